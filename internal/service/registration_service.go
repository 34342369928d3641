package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/citc-dev/registrar-api/internal/models"
	appErrors "github.com/citc-dev/registrar-api/pkg/errors"
)

type registrationRepository interface {
	LatestByUser(ctx context.Context, userID string) (*models.Registration, error)
	FindByID(ctx context.Context, id string) (*models.Registration, error)
	List(ctx context.Context, filter models.RegistrationFilter) ([]models.Registration, int, error)
	Create(ctx context.Context, registration *models.Registration) error
	UpdateStatus(ctx context.Context, id string, status models.RegistrationStatus) error
}

type userAccountRepository interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
}

type studentProfileRepository interface {
	FindByUserID(ctx context.Context, userID string) (*models.Student, error)
	Create(ctx context.Context, student *models.Student) error
}

// RegisterStudentRequest describes a registration submission. When the email
// has no account yet, one is provisioned with the given initial password.
type RegisterStudentRequest struct {
	Email           string `json:"email" validate:"required,email"`
	FullName        string `json:"fullName" validate:"required"`
	InitialPassword string `json:"initialPassword" validate:"omitempty,min=8"`
	StudentNo       string `json:"studentNo" validate:"required"`
	Gender          string `json:"gender" validate:"required"`
	YearLevel       string `json:"yearLevel" validate:"required"`
	Semester        string `json:"semester" validate:"required"`
	SchoolYear      string `json:"schoolYear" validate:"required"`
	ApplicationType string `json:"applicationType" validate:"required,oneof=NEW OLD TRANSFEREE RETURNEE"`
	StudentType     string `json:"studentType" validate:"required,oneof=REGULAR IRREGULAR"`
	YearOfEntry     int    `json:"yearOfEntry" validate:"required,min=1990"`
}

// RegistrationService orchestrates student registration, including account
// and profile provisioning for first-time registrants.
type RegistrationService struct {
	repo      registrationRepository
	users     userAccountRepository
	students  studentProfileRepository
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewRegistrationService constructs RegistrationService.
func NewRegistrationService(repo registrationRepository, users userAccountRepository, students studentProfileRepository, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *RegistrationService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RegistrationService{repo: repo, users: users, students: students, cache: cache, validator: validate, logger: logger}
}

// Register validates and persists a registration, provisioning the user
// account and student profile when missing.
func (s *RegistrationService) Register(ctx context.Context, req RegisterStudentRequest) (*models.Registration, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid registration payload")
	}
	if _, ok := models.CanonicalYearLevel(req.YearLevel); !ok {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unrecognized year level")
	}
	if _, ok := models.CanonicalSemester(req.Semester); !ok {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unrecognized semester")
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to look up account")
		}
		user, err = s.provisionAccount(ctx, email, req)
		if err != nil {
			return nil, err
		}
	}

	if _, err := s.students.FindByUserID(ctx, user.ID); err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to look up student profile")
		}
		if err := s.provisionProfile(ctx, user.ID, req); err != nil {
			return nil, err
		}
	}

	registration := &models.Registration{
		UserID:          user.ID,
		YearLevel:       req.YearLevel,
		Semester:        req.Semester,
		SchoolYear:      req.SchoolYear,
		ApplicationType: req.ApplicationType,
		StudentType:     req.StudentType,
		Status:          models.RegistrationStatusPending,
	}
	if err := s.repo.Create(ctx, registration); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create registration")
	}
	s.invalidateDashboard(ctx)
	return registration, nil
}

// List returns registrations with pagination metadata.
func (s *RegistrationService) List(ctx context.Context, filter models.RegistrationFilter) ([]models.Registration, *models.Pagination, error) {
	registrations, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list registrations")
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 {
		size = 20
	}
	return registrations, &models.Pagination{Page: page, PageSize: size, TotalCount: total}, nil
}

// Find returns one registration.
func (s *RegistrationService) Find(ctx context.Context, id string) (*models.Registration, error) {
	registration, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "registration not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load registration")
	}
	return registration, nil
}

// Review approves or rejects a pending registration.
func (s *RegistrationService) Review(ctx context.Context, id string, status models.RegistrationStatus) (*models.Registration, error) {
	if status != models.RegistrationStatusApproved && status != models.RegistrationStatusRejected {
		return nil, appErrors.Clone(appErrors.ErrValidation, "status must be APPROVED or REJECTED")
	}
	registration, err := s.Find(ctx, id)
	if err != nil {
		return nil, err
	}
	if registration.Status != models.RegistrationStatusPending {
		return nil, appErrors.Clone(appErrors.ErrConflict, "registration already reviewed")
	}
	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update registration")
	}
	registration.Status = status
	s.invalidateDashboard(ctx)
	return registration, nil
}

func (s *RegistrationService) provisionAccount(ctx context.Context, email string, req RegisterStudentRequest) (*models.User, error) {
	password := req.InitialPassword
	if password == "" {
		// First-time registrants without a chosen password start with their
		// student number; they are forced to change it on first login.
		password = req.StudentNo
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to hash password")
	}
	user := &models.User{
		Email:        email,
		PasswordHash: string(hash),
		FullName:     req.FullName,
		Role:         models.RoleStudent,
		Active:       true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create account")
	}
	return user, nil
}

func (s *RegistrationService) provisionProfile(ctx context.Context, userID string, req RegisterStudentRequest) error {
	yearLevel := 1
	if level, ok := models.CanonicalYearLevel(req.YearLevel); ok {
		if n := level.Ordinal(); n > 0 {
			yearLevel = n
		}
	}
	semester := 1
	if canonical, ok := models.CanonicalSemester(req.Semester); ok && canonical == models.SemesterSecond {
		semester = 2
	}
	student := &models.Student{
		UserID:           userID,
		StudentNo:        req.StudentNo,
		FullName:         req.FullName,
		Gender:           req.Gender,
		CurrentYearLevel: yearLevel,
		CurrentSemester:  semester,
		YearOfEntry:      req.YearOfEntry,
	}
	if err := s.students.Create(ctx, student); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create student profile")
	}
	return nil
}

func (s *RegistrationService) invalidateDashboard(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, "dash:*"); err != nil {
		s.logger.Warn("dashboard cache invalidation failed", zap.Error(err))
	}
}
