package dto

import "time"

// DownloadLinkResponse carries a signed, expiring download token for a
// generated document.
type DownloadLinkResponse struct {
	RequestID string    `json:"requestId"`
	Token     string    `json:"token"`
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expiresAt"`
}
