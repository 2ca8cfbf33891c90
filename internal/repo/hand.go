package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"poker-hand-service/internal/model"
	appErr "poker-hand-service/pkg/errors"
	"poker-hand-service/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// HandRepository owns the hands table and the translation between the
// in-memory Hand and its stored row. Table existence is checked once at
// construction and cached; the repository is built once at startup and
// shared across requests.
type HandRepository struct {
	db          *gorm.DB
	decoder     RowDecoder
	tableExists bool
}

func NewHandRepository(db *gorm.DB) *HandRepository {
	return NewHandRepositoryWithDecoder(db, RepairDecoder{})
}

func NewHandRepositoryWithDecoder(db *gorm.DB, decoder RowDecoder) *HandRepository {
	exists := db.Migrator().HasTable(&model.HandRow{})
	if !exists {
		logger.Log.Warn("hands table does not exist; database operations will fail until it is created")
	}
	return &HandRepository{db: db, decoder: decoder, tableExists: exists}
}

func (r *HandRepository) TableExists() bool {
	return r.tableExists
}

// Create inserts the hand as a single row inside an explicit
// transaction and returns the persisted record. A missing table is
// reported as ErrHandsTableMissing; any other insert failure is logged
// and reported as ErrHandNotSaved.
func (r *HandRepository) Create(ctx context.Context, hand *model.Hand) (*model.Hand, error) {
	if !r.tableExists {
		return nil, appErr.ErrHandsTableMissing
	}

	row, err := encodeHand(hand)
	if err != nil {
		logger.Log.Error("failed to encode hand for storage",
			zap.String("hand_id", hand.ID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: %v", appErr.ErrHandNotSaved, err)
	}

	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(row).Error
	})
	if err != nil {
		logger.Log.Error("failed to insert hand",
			zap.String("hand_id", hand.ID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: %v", appErr.ErrHandNotSaved, err)
	}

	return r.decoder.Decode(row)
}

// ListAll returns every stored hand, newest first. It never fails:
// query errors and undecodable rows are logged and the history degrades
// to whatever could be read, keeping the listing endpoint available.
func (r *HandRepository) ListAll(ctx context.Context) []model.Hand {
	if !r.tableExists {
		return []model.Hand{}
	}

	var rows []model.HandRow
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&rows).Error; err != nil {
		logger.Log.Error("failed to list hands; returning empty history", zap.Error(err))
		return []model.Hand{}
	}

	hands := make([]model.Hand, 0, len(rows))
	for i := range rows {
		hand, err := r.decoder.Decode(&rows[i])
		if err != nil {
			logger.Log.Error("skipping undecodable hand row",
				zap.String("hand_id", rows[i].ID),
				zap.Error(err),
			)
			continue
		}
		hands = append(hands, *hand)
	}
	return hands
}

// GetByID returns the matching hand, ErrHandNotFound when there is no
// such row, or ErrHandsTableMissing when the table is absent. Query
// failures degrade to not-found rather than surfacing a server error.
func (r *HandRepository) GetByID(ctx context.Context, id string) (*model.Hand, error) {
	if !r.tableExists {
		return nil, appErr.ErrHandsTableMissing
	}

	var row model.HandRow
	err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, appErr.ErrHandNotFound
	}
	if err != nil {
		logger.Log.Error("failed to query hand by id",
			zap.String("hand_id", id),
			zap.Error(err),
		)
		return nil, appErr.ErrHandNotFound
	}

	return r.decoder.Decode(&row)
}

func encodeHand(hand *model.Hand) (*model.HandRow, error) {
	stacks, err := json.Marshal(hand.StackSettings)
	if err != nil {
		return nil, err
	}
	roles, err := json.Marshal(hand.PlayerRoles)
	if err != nil {
		return nil, err
	}
	cards, err := json.Marshal(hand.HoleCards)
	if err != nil {
		return nil, err
	}
	winnings, err := json.Marshal(hand.Winnings)
	if err != nil {
		return nil, err
	}

	return &model.HandRow{
		ID:             hand.ID,
		CreatedAt:      hand.CreatedAt,
		StackSettings:  datatypes.JSON(stacks),
		PlayerRoles:    datatypes.JSON(roles),
		HoleCards:      datatypes.JSON(cards),
		ActionSequence: hand.ActionSequence,
		Winnings:       datatypes.JSON(winnings),
	}, nil
}

// RowDecoder turns a stored row back into a Hand. The two
// implementations differ only in what they do with damaged rows.
type RowDecoder interface {
	Decode(row *model.HandRow) (*model.Hand, error)
}

// RepairDecoder patches over damaged rows instead of failing: malformed
// JSON fields decode to empty mappings, an unusable id is replaced with
// a fresh one and a zero timestamp with the current time. Each repair
// is logged. The hand history is a best-effort log, so availability
// wins over strict integrity here.
type RepairDecoder struct{}

func (RepairDecoder) Decode(row *model.HandRow) (*model.Hand, error) {
	hand := &model.Hand{
		ID:             row.ID,
		CreatedAt:      row.CreatedAt,
		ActionSequence: row.ActionSequence,
	}

	if err := decodeJSONField(row.StackSettings, &hand.StackSettings); err != nil {
		logger.Log.Warn("malformed stack_settings in stored hand; using empty mapping",
			zap.String("hand_id", row.ID),
			zap.Error(err),
		)
		hand.StackSettings = model.StackSettings{}
	}
	if hand.StackSettings.Amounts == nil {
		hand.StackSettings.Amounts = map[string]int64{}
	}

	hand.PlayerRoles = decodeStringMap(row.ID, "player_roles", row.PlayerRoles)

	if err := decodeJSONField(row.HoleCards, &hand.HoleCards); err != nil || hand.HoleCards == nil {
		if err != nil {
			logger.Log.Warn("malformed hole_cards in stored hand; using empty mapping",
				zap.String("hand_id", row.ID),
				zap.Error(err),
			)
		}
		hand.HoleCards = map[string][]string{}
	}

	if err := decodeJSONField(row.Winnings, &hand.Winnings); err != nil || hand.Winnings == nil {
		if err != nil {
			logger.Log.Warn("malformed winnings in stored hand; using empty mapping",
				zap.String("hand_id", row.ID),
				zap.Error(err),
			)
		}
		hand.Winnings = map[string]int64{}
	}

	if uuid.Validate(hand.ID) != nil {
		logger.Log.Warn("invalid hand id in stored row; generating a new one",
			zap.String("hand_id", row.ID),
		)
		hand.ID = uuid.NewString()
	}
	if hand.CreatedAt.IsZero() {
		logger.Log.Warn("missing created_at in stored hand; using current time",
			zap.String("hand_id", hand.ID),
		)
		hand.CreatedAt = time.Now().UTC()
	}

	return hand, nil
}

func decodeStringMap(handID, field string, raw datatypes.JSON) map[string]string {
	out := map[string]string{}
	if err := decodeJSONField(raw, &out); err != nil {
		logger.Log.Warn("malformed field in stored hand; using empty mapping",
			zap.String("hand_id", handID),
			zap.String("field", field),
			zap.Error(err),
		)
		return map[string]string{}
	}
	if out == nil {
		return map[string]string{}
	}
	return out
}

// StrictDecoder fails loudly on any damaged row. Meant for deployments
// that need integrity guarantees over availability.
type StrictDecoder struct{}

func (StrictDecoder) Decode(row *model.HandRow) (*model.Hand, error) {
	hand := &model.Hand{
		ID:             row.ID,
		CreatedAt:      row.CreatedAt,
		ActionSequence: row.ActionSequence,
	}

	if err := decodeJSONField(row.StackSettings, &hand.StackSettings); err != nil {
		return nil, fmt.Errorf("hand %s: stack_settings: %w", row.ID, err)
	}
	if err := decodeJSONField(row.PlayerRoles, &hand.PlayerRoles); err != nil {
		return nil, fmt.Errorf("hand %s: player_roles: %w", row.ID, err)
	}
	if err := decodeJSONField(row.HoleCards, &hand.HoleCards); err != nil {
		return nil, fmt.Errorf("hand %s: hole_cards: %w", row.ID, err)
	}
	if err := decodeJSONField(row.Winnings, &hand.Winnings); err != nil {
		return nil, fmt.Errorf("hand %s: winnings: %w", row.ID, err)
	}
	if err := uuid.Validate(hand.ID); err != nil {
		return nil, fmt.Errorf("hand %s: invalid id: %w", row.ID, err)
	}
	if hand.CreatedAt.IsZero() {
		return nil, fmt.Errorf("hand %s: missing created_at", row.ID)
	}

	return hand, nil
}

func decodeJSONField(raw datatypes.JSON, dest interface{}) error {
	if len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, dest)
}
