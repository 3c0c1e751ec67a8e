package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SAP-F-2025/classroom-service/internal/models"
	"github.com/SAP-F-2025/classroom-service/internal/notifier"
	"github.com/SAP-F-2025/classroom-service/internal/repositories"
)

const (
	SubjectSubmissionUpdate = "Quiz submission update"
	SubjectQuizResult       = "Quiz result"
)

// NotificationService tells parents about their child's quiz activity.
// Delivery is best-effort: nothing here returns an error.
type NotificationService interface {
	NotifySubmission(ctx context.Context, student *models.User, quiz *models.Quiz, submission *models.Submission)
	NotifyGraded(ctx context.Context, student *models.User, quiz *models.Quiz, submission *models.Submission)
}

type notificationService struct {
	repo       repositories.Repository
	email      notifier.EmailSender
	whatsapp   notifier.WhatsAppSender
	autoNotify bool
	logger     *slog.Logger
}

func NewNotificationService(repo repositories.Repository, email notifier.EmailSender, whatsapp notifier.WhatsAppSender, autoNotify bool, logger *slog.Logger) NotificationService {
	return &notificationService{
		repo:       repo,
		email:      email,
		whatsapp:   whatsapp,
		autoNotify: autoNotify,
		logger:     logger,
	}
}

func (s *notificationService) NotifySubmission(ctx context.Context, student *models.User, quiz *models.Quiz, submission *models.Submission) {
	if !s.autoNotify || !student.IsStudent() {
		return
	}
	s.dispatch(ctx, student, submission.ID, SubjectSubmissionUpdate, SubmissionSummary(student, quiz, submission))
}

func (s *notificationService) NotifyGraded(ctx context.Context, student *models.User, quiz *models.Quiz, submission *models.Submission) {
	s.dispatch(ctx, student, submission.ID, SubjectQuizResult, GradedSummary(student, quiz, submission))
}

// SubmissionSummary is the parent-facing text sent after a submission
func SubmissionSummary(student *models.User, quiz *models.Quiz, submission *models.Submission) string {
	summary := fmt.Sprintf("Student %s submitted quiz '%s'.", student.Name, quiz.Title)
	if submission.Graded && submission.TotalScore != nil {
		return summary + fmt.Sprintf(" Score: %d.", *submission.TotalScore)
	}
	return summary + " Grading pending for some answers."
}

// GradedSummary is the parent-facing text sent once a teacher grades
func GradedSummary(student *models.User, quiz *models.Quiz, submission *models.Submission) string {
	score := 0
	if submission.TotalScore != nil {
		score = *submission.TotalScore
	}
	return fmt.Sprintf("Student %s graded for quiz '%s'. Score: %d.", student.Name, quiz.Title, score)
}

// dispatch makes one attempt per configured parent contact
func (s *notificationService) dispatch(ctx context.Context, student *models.User, submissionID uint, subject, body string) {
	if student == nil {
		return
	}

	if student.ParentEmail != nil && *student.ParentEmail != "" {
		err := s.email.SendEmail(ctx, notifier.Message{To: *student.ParentEmail, Subject: subject, Body: body})
		s.record(ctx, submissionID, models.ChannelEmail, *student.ParentEmail, subject, body, err)
	}

	if student.ParentWhatsApp != nil && *student.ParentWhatsApp != "" {
		err := s.whatsapp.SendWhatsApp(ctx, *student.ParentWhatsApp, body)
		s.record(ctx, submissionID, models.ChannelWhatsApp, notifier.WhatsAppAddress(*student.ParentWhatsApp), "", body, err)
	}
}

func (s *notificationService) record(ctx context.Context, submissionID uint, channel models.NotificationChannel, recipient, subject, body string, sendErr error) {
	if sendErr != nil {
		s.logger.Warn("Parent notification failed",
			"channel", channel,
			"submission_id", submissionID,
			"error", sendErr)
	} else {
		s.logger.Info("Parent notified", "channel", channel, "submission_id", submissionID)
	}

	entry := &models.NotificationLog{
		SubmissionID: submissionID,
		Channel:      channel,
		Recipient:    recipient,
		Subject:      subject,
		Body:         body,
		Delivered:    sendErr == nil,
	}
	if err := s.repo.NotificationLog().Create(ctx, entry); err != nil {
		s.logger.Warn("Failed to record notification", "submission_id", submissionID, "error", err)
	}
}
