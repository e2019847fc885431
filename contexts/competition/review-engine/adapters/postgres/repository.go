package postgresadapter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"codecomp/contexts/competition/review-engine/domain/entities"
	domainerrors "codecomp/contexts/competition/review-engine/domain/errors"
	"codecomp/contexts/competition/review-engine/ports"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{
		db:     db,
		logger: logger,
	}
}

func (r *Repository) ListMembers(ctx context.Context) ([]entities.Member, error) {
	var rows []memberModel
	if err := r.db.WithContext(ctx).Order("team ASC, name ASC").Find(&rows).Error; err != nil {
		return nil, storeFailure(err)
	}
	items := make([]entities.Member, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) GetMember(ctx context.Context, slackUserID string) (entities.Member, error) {
	var row memberModel
	err := r.db.WithContext(ctx).
		Where("slack_user_id = ?", strings.TrimSpace(slackUserID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Member{}, domainerrors.ErrMemberNotOnTeam
		}
		return entities.Member{}, storeFailure(err)
	}
	return row.toEntity(), nil
}

func (r *Repository) ListChallenges(ctx context.Context) ([]entities.Challenge, error) {
	var rows []challengeModel
	if err := r.db.WithContext(ctx).Order("challenge_key ASC").Find(&rows).Error; err != nil {
		return nil, storeFailure(err)
	}
	items := make([]entities.Challenge, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) GetChallenge(ctx context.Context, challengeKey string) (entities.Challenge, error) {
	var row challengeModel
	err := r.db.WithContext(ctx).
		Where("challenge_key = ?", strings.TrimSpace(challengeKey)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Challenge{}, domainerrors.ErrUnknownChallenge
		}
		return entities.Challenge{}, storeFailure(err)
	}
	return row.toEntity(), nil
}

func (r *Repository) CreateChallenge(ctx context.Context, challenge entities.Challenge) error {
	if !challenge.ValidateCreate() {
		return domainerrors.ErrInvalidInput
	}
	row := challengeModel{
		ChallengeKey:  strings.TrimSpace(challenge.ChallengeKey),
		ChallengeName: strings.TrimSpace(challenge.ChallengeName),
		Points:        challenge.Points,
		MinNum:        challenge.MinNum,
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrInvalidInput
		}
		return storeFailure(err)
	}
	return nil
}

func (r *Repository) CreateSubmission(ctx context.Context, submission entities.Submission) error {
	row := submissionModelFromEntity(submission)
	if row.CreatedAt.IsZero() {
		row.CreatedAt = time.Now().UTC()
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrInvalidInput
		}
		return storeFailure(err)
	}
	return nil
}

func (r *Repository) GetSubmission(ctx context.Context, submissionID string) (entities.Submission, error) {
	var row submissionModel
	err := r.db.WithContext(ctx).
		Where("submission_id = ?", strings.TrimSpace(submissionID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Submission{}, domainerrors.ErrSubmissionNotFound
		}
		return entities.Submission{}, storeFailure(err)
	}
	return row.toEntity(), nil
}

func (r *Repository) ListSubmissions(ctx context.Context, filter ports.SubmissionFilter) ([]entities.Submission, error) {
	tx := r.db.WithContext(ctx).Model(&submissionModel{})
	if filter.Status != "" {
		tx = tx.Where("status = ?", string(filter.Status))
	}
	if strings.TrimSpace(filter.Team) != "" {
		tx = tx.Where("team = ?", strings.TrimSpace(filter.Team))
	}
	if strings.TrimSpace(filter.ChallengeKey) != "" {
		tx = tx.Where("challenge_key = ?", strings.TrimSpace(filter.ChallengeKey))
	}

	var rows []submissionModel
	if err := tx.Order("created_at ASC").Find(&rows).Error; err != nil {
		return nil, storeFailure(err)
	}

	items := make([]entities.Submission, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

// DecideSubmission moves a pending submission to its terminal status and,
// for approvals, appends the matching ledger row in the same transaction.
// The pending guard in the WHERE clause keeps a lost race from double
// counting points.
func (r *Repository) DecideSubmission(ctx context.Context, submission entities.Submission, entry *entities.LedgerEntry) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row := submissionModelFromEntity(submission)
		result := tx.
			Model(&submissionModel{}).
			Where("submission_id = ?", row.SubmissionID).
			Where("status = ?", string(entities.SubmissionStatusPending)).
			Updates(map[string]any{
				"status":        row.Status,
				"challenge_key": row.ChallengeKey,
				"points":        row.Points,
				"reviewed_by":   row.ReviewedBy,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			var existingCount int64
			if err := tx.
				Model(&submissionModel{}).
				Where("submission_id = ?", row.SubmissionID).
				Count(&existingCount).
				Error; err != nil {
				return err
			}
			if existingCount == 0 {
				return domainerrors.ErrSubmissionNotFound
			}
			return domainerrors.ErrNotPending
		}

		if entry != nil {
			ledgerRow := ledgerModelFromEntity(*entry)
			if ledgerRow.Timestamp.IsZero() {
				ledgerRow.Timestamp = time.Now().UTC()
			}
			if err := tx.Create(&ledgerRow).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, domainerrors.ErrSubmissionNotFound) || errors.Is(err, domainerrors.ErrNotPending) {
			return err
		}
		return storeFailure(err)
	}
	return nil
}

func (r *Repository) ListLedger(ctx context.Context) ([]entities.LedgerEntry, error) {
	var rows []ledgerModel
	if err := r.db.WithContext(ctx).Order("timestamp ASC, id ASC").Find(&rows).Error; err != nil {
		return nil, storeFailure(err)
	}
	items := make([]entities.LedgerEntry, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) GetQueuePointer(ctx context.Context) (entities.QueuePointer, bool, error) {
	var row queuePointerModel
	err := r.db.WithContext(ctx).
		Where("id = ?", queuePointerRowID).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.QueuePointer{}, false, nil
		}
		return entities.QueuePointer{}, false, storeFailure(err)
	}
	pointer := row.toEntity()
	if pointer.Empty() {
		return entities.QueuePointer{}, false, nil
	}
	return pointer, true, nil
}

// SetQueuePointer overwrites the single pointer row, retiring whatever
// message it previously referenced.
func (r *Repository) SetQueuePointer(ctx context.Context, pointer entities.QueuePointer) error {
	row := queuePointerModel{
		ID:        queuePointerRowID,
		MessageTS: strings.TrimSpace(pointer.MessageTS),
		ChannelID: strings.TrimSpace(pointer.ChannelID),
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.
			Model(&queuePointerModel{}).
			Where("id = ?", queuePointerRowID).
			Updates(map[string]any{
				"message_ts": row.MessageTS,
				"channel_id": row.ChannelID,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected > 0 {
			return nil
		}
		return tx.Create(&row).Error
	})
	if err != nil {
		return storeFailure(err)
	}
	return nil
}

// ResetSemester clears submissions, ledger, and the queue pointer in one
// transaction. The roster and challenge catalog survive a reset.
func (r *Repository) ResetSemester(ctx context.Context) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&submissionModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("1 = 1").Delete(&ledgerModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("id = ?", queuePointerRowID).Delete(&queuePointerModel{}).Error; err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return storeFailure(err)
	}
	return nil
}

const queuePointerRowID = 1

type memberModel struct {
	SlackUserID string `gorm:"column:slack_user_id;primaryKey"`
	Name        string `gorm:"column:name"`
	Team        string `gorm:"column:team"`
}

func (memberModel) TableName() string {
	return "members"
}

func (m memberModel) toEntity() entities.Member {
	return entities.Member{
		SlackUserID: m.SlackUserID,
		Name:        m.Name,
		Team:        m.Team,
	}
}

type challengeModel struct {
	ChallengeKey  string `gorm:"column:challenge_key;primaryKey"`
	ChallengeName string `gorm:"column:challenge_name"`
	Points        int    `gorm:"column:points"`
	MinNum        int    `gorm:"column:min_num"`
}

func (challengeModel) TableName() string {
	return "challenges"
}

func (m challengeModel) toEntity() entities.Challenge {
	return entities.Challenge{
		ChallengeKey:  m.ChallengeKey,
		ChallengeName: m.ChallengeName,
		Points:        m.Points,
		MinNum:        m.MinNum,
	}
}

type submissionModel struct {
	SubmissionID string    `gorm:"column:submission_id;primaryKey"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	SlackUserID  string    `gorm:"column:slack_user_id"`
	Team         string    `gorm:"column:team"`
	MemberText   string    `gorm:"column:member_text"`
	MessageURL   string    `gorm:"column:message_url"`
	PhotoURL     string    `gorm:"column:photo_url"`
	Status       string    `gorm:"column:status"`
	ChallengeKey string    `gorm:"column:challenge_key"`
	Points       int       `gorm:"column:points"`
	ReviewedBy   string    `gorm:"column:reviewed_by"`
}

func (submissionModel) TableName() string {
	return "submissions"
}

func submissionModelFromEntity(item entities.Submission) submissionModel {
	return submissionModel{
		SubmissionID: strings.TrimSpace(item.SubmissionID),
		CreatedAt:    item.CreatedAt.UTC(),
		SlackUserID:  strings.TrimSpace(item.SlackUserID),
		Team:         strings.TrimSpace(item.Team),
		MemberText:   item.MemberText,
		MessageURL:   strings.TrimSpace(item.MessageURL),
		PhotoURL:     strings.TrimSpace(item.PhotoURL),
		Status:       string(item.Status),
		ChallengeKey: strings.TrimSpace(item.ChallengeKey),
		Points:       item.Points,
		ReviewedBy:   strings.TrimSpace(item.ReviewedBy),
	}
}

func (m submissionModel) toEntity() entities.Submission {
	return entities.Submission{
		SubmissionID: m.SubmissionID,
		CreatedAt:    m.CreatedAt.UTC(),
		SlackUserID:  m.SlackUserID,
		Team:         m.Team,
		MemberText:   m.MemberText,
		MessageURL:   m.MessageURL,
		PhotoURL:     m.PhotoURL,
		Status:       entities.SubmissionStatus(m.Status),
		ChallengeKey: m.ChallengeKey,
		Points:       m.Points,
		ReviewedBy:   m.ReviewedBy,
	}
}

type ledgerModel struct {
	ID           uint      `gorm:"column:id;primaryKey;autoIncrement"`
	Timestamp    time.Time `gorm:"column:timestamp"`
	Team         string    `gorm:"column:team"`
	PointsDelta  int       `gorm:"column:points_delta"`
	ChallengeKey string    `gorm:"column:challenge_key"`
	SubmissionID string    `gorm:"column:submission_id"`
	ReviewedBy   string    `gorm:"column:reviewed_by"`
}

func (ledgerModel) TableName() string {
	return "ledger"
}

func ledgerModelFromEntity(item entities.LedgerEntry) ledgerModel {
	return ledgerModel{
		Timestamp:    item.Timestamp.UTC(),
		Team:         strings.TrimSpace(item.Team),
		PointsDelta:  item.PointsDelta,
		ChallengeKey: strings.TrimSpace(item.ChallengeKey),
		SubmissionID: strings.TrimSpace(item.SubmissionID),
		ReviewedBy:   strings.TrimSpace(item.ReviewedBy),
	}
}

func (m ledgerModel) toEntity() entities.LedgerEntry {
	return entities.LedgerEntry{
		Timestamp:    m.Timestamp.UTC(),
		Team:         m.Team,
		PointsDelta:  m.PointsDelta,
		ChallengeKey: m.ChallengeKey,
		SubmissionID: m.SubmissionID,
		ReviewedBy:   m.ReviewedBy,
	}
}

type queuePointerModel struct {
	ID        int    `gorm:"column:id;primaryKey"`
	MessageTS string `gorm:"column:message_ts"`
	ChannelID string `gorm:"column:channel_id"`
}

func (queuePointerModel) TableName() string {
	return "queue"
}

func (m queuePointerModel) toEntity() entities.QueuePointer {
	return entities.QueuePointer{
		MessageTS: m.MessageTS,
		ChannelID: m.ChannelID,
	}
}

func storeFailure(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %v", domainerrors.ErrStoreUnavailable, err)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
