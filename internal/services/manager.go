package services

import (
	"log/slog"
	"time"

	"github.com/SAP-F-2025/classroom-service/internal/cache"
	"github.com/SAP-F-2025/classroom-service/internal/events"
	"github.com/SAP-F-2025/classroom-service/internal/notifier"
	"github.com/SAP-F-2025/classroom-service/internal/repositories"
	"github.com/SAP-F-2025/classroom-service/internal/storage"
	"github.com/SAP-F-2025/classroom-service/internal/validator"
)

// ServiceManager exposes every service the HTTP layer needs
type ServiceManager interface {
	Auth() AuthService
	Quiz() QuizService
	Submission() SubmissionService
	Content() ContentService
	Export() ExportService
	Admin() AdminService
}

// Dependencies groups the infrastructure services are built from
type Dependencies struct {
	Repo              repositories.Repository
	Storage           storage.FileStorage
	Cache             cache.CacheService
	Publisher         events.EventPublisher
	Email             notifier.EmailSender
	WhatsApp          notifier.WhatsAppSender
	Validator         *validator.Validator
	Logger            *slog.Logger
	Auth              AuthConfig
	CacheTTL          time.Duration
	AutoNotifyParents bool
}

type serviceManager struct {
	auth       AuthService
	quiz       QuizService
	submission SubmissionService
	content    ContentService
	export     ExportService
	admin      AdminService
}

func NewServiceManager(deps Dependencies) ServiceManager {
	tokens := cache.NewTokenStore(deps.Cache)
	quizzes := NewQuizService(deps.Repo, deps.Cache, deps.Publisher, deps.Logger, deps.Validator, deps.CacheTTL)
	notifications := NewNotificationService(deps.Repo, deps.Email, deps.WhatsApp, deps.AutoNotifyParents, deps.Logger)

	return &serviceManager{
		auth:       NewAuthService(deps.Repo, tokens, deps.Logger, deps.Validator, deps.Auth),
		quiz:       quizzes,
		submission: NewSubmissionService(deps.Repo, deps.Storage, notifications, deps.Publisher, deps.Logger),
		content:    NewContentService(deps.Repo, deps.Storage, quizzes, deps.Logger, deps.Validator),
		export:     NewExportService(deps.Repo, deps.Logger),
		admin:      NewAdminService(deps.Repo, deps.Storage, deps.Cache, deps.Publisher, deps.Logger),
	}
}

func (m *serviceManager) Auth() AuthService             { return m.auth }
func (m *serviceManager) Quiz() QuizService             { return m.quiz }
func (m *serviceManager) Submission() SubmissionService { return m.submission }
func (m *serviceManager) Content() ContentService       { return m.content }
func (m *serviceManager) Export() ExportService         { return m.export }
func (m *serviceManager) Admin() AdminService           { return m.admin }
