package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/datatypes"
)

// Hand is one completed poker deal: who sat with what, what they held,
// what happened, and who ended up with the chips. Records are immutable
// once created; there is no update path anywhere in the service.
type Hand struct {
	ID             string              `json:"id"`
	CreatedAt      time.Time           `json:"created_at"`
	StackSettings  StackSettings       `json:"stack_settings"`
	PlayerRoles    map[string]string   `json:"player_roles"`
	HoleCards      map[string][]string `json:"hole_cards"`
	ActionSequence string              `json:"action_sequence"`
	Winnings       map[string]int64    `json:"winnings"`
}

// StackSettings maps player id to starting stack while remembering the
// key order of the JSON object it was decoded from. Go maps have no
// ordering, but "first participant" must stay well defined across the
// request, the stored row, and every re-read.
type StackSettings struct {
	Order   []string
	Amounts map[string]int64
}

func NewStackSettings(pairs ...StackEntry) StackSettings {
	s := StackSettings{Amounts: make(map[string]int64, len(pairs))}
	for _, p := range pairs {
		if _, ok := s.Amounts[p.Player]; !ok {
			s.Order = append(s.Order, p.Player)
		}
		s.Amounts[p.Player] = p.Stack
	}
	return s
}

type StackEntry struct {
	Player string
	Stack  int64
}

func (s *StackSettings) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("stack settings: expected JSON object, got %v", tok)
	}

	s.Order = nil
	s.Amounts = make(map[string]int64)
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key := keyTok.(string)

		valTok, err := dec.Token()
		if err != nil {
			return err
		}
		num, ok := valTok.(json.Number)
		if !ok {
			return fmt.Errorf("stack settings: stack for %q is not a number", key)
		}
		stack, err := num.Int64()
		if err != nil {
			return fmt.Errorf("stack settings: stack for %q: %w", key, err)
		}

		if _, seen := s.Amounts[key]; !seen {
			s.Order = append(s.Order, key)
		}
		s.Amounts[key] = stack
	}

	_, err = dec.Token() // closing brace
	return err
}

// MarshalJSON writes the object with keys in submission order, so the
// order survives the trip through the text column and back.
func (s StackSettings) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, player := range s.Order {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(player)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		fmt.Fprintf(&buf, "%d", s.Amounts[player])
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (s StackSettings) Len() int {
	return len(s.Order)
}

// HandRow is the stored shape of a Hand in the "hands" table. The nested
// maps live in JSON text columns; the repository owns the translation in
// both directions.
type HandRow struct {
	ID             string `gorm:"primaryKey"`
	CreatedAt      time.Time
	StackSettings  datatypes.JSON
	PlayerRoles    datatypes.JSON
	HoleCards      datatypes.JSON
	ActionSequence string
	Winnings       datatypes.JSON
}

func (HandRow) TableName() string {
	return "hands"
}
