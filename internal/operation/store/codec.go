package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/ledger/internal/operation"
)

const (
	// dateLayout is written for every record; the fraction is optional when reading.
	dateLayout     = "2006-01-02T15:04:05.000000"
	dateReadLayout = "2006-01-02T15:04:05.999999999"
)

// record is the on-disk shape of an operation. The id is the enclosing object key.
type record struct {
	Date        string      `json:"date"`
	Category    string      `json:"category"`
	Amount      json.Number `json:"amount"`
	Description string      `json:"description"`
}

// snapshot is the whole store in file key order.
type snapshot struct {
	ops   []*operation.Operation
	index map[string]int
}

func (s *snapshot) has(id string) bool {
	_, ok := s.index[id]
	return ok
}

func (s *snapshot) get(id string) (*operation.Operation, bool) {
	i, ok := s.index[id]
	if !ok {
		return nil, false
	}

	return s.ops[i], true
}

// add appends op, or replaces the entry with the same id in place.
func (s *snapshot) add(op *operation.Operation) {
	if s.index == nil {
		s.index = make(map[string]int)
	}

	if i, ok := s.index[op.ID]; ok {
		s.ops[i] = op
		return
	}

	s.index[op.ID] = len(s.ops)
	s.ops = append(s.ops, op)
}

func (s *snapshot) remove(id string) bool {
	i, ok := s.index[id]
	if !ok {
		return false
	}

	s.ops = append(s.ops[:i], s.ops[i+1:]...)
	delete(s.index, id)

	for j := i; j < len(s.ops); j++ {
		s.index[s.ops[j].ID] = j
	}

	return true
}

// decode reads the top-level object token by token to keep its key order.
func decode(data []byte) (*snapshot, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}

	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, errors.New("expected a JSON object")
	}

	snap := &snapshot{index: make(map[string]int)}

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}

		id, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected token %v", tok)
		}

		var rec record
		if err := dec.Decode(&rec); err != nil {
			return nil, fmt.Errorf("record %s: %w", id, err)
		}

		op, err := rec.toOperation(id)
		if err != nil {
			return nil, fmt.Errorf("record %s: %w", id, err)
		}

		snap.add(op)
	}

	if _, err := dec.Token(); err != nil {
		return nil, err
	}

	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("trailing data after the JSON object")
	}

	return snap, nil
}

func (r record) toOperation(id string) (*operation.Operation, error) {
	createdAt, err := time.ParseInLocation(dateReadLayout, r.Date, time.Local)
	if err != nil {
		return nil, fmt.Errorf("parsing date: %w", err)
	}

	amount, err := decimal.NewFromString(r.Amount.String())
	if err != nil {
		return nil, fmt.Errorf("parsing amount: %w", err)
	}

	op := &operation.Operation{
		ID:          id,
		Category:    operation.Category(r.Category),
		Amount:      amount,
		Description: r.Description,
		CreatedAt:   createdAt,
	}

	if err := op.Category.Validate(); err != nil {
		return nil, err
	}

	if err := operation.ValidateAmount(op.Amount); err != nil {
		return nil, err
	}

	if err := operation.ValidateDescription(op.Description); err != nil {
		return nil, err
	}

	return op, nil
}

// encode writes the store as an indented JSON object in snapshot order.
func encode(snap *snapshot) ([]byte, error) {
	if len(snap.ops) == 0 {
		return []byte("{}\n"), nil
	}

	var buf bytes.Buffer

	buf.WriteString("{\n")

	for i, op := range snap.ops {
		key, err := json.Marshal(op.ID)
		if err != nil {
			return nil, err
		}

		val, err := json.MarshalIndent(record{
			Date:        op.CreatedAt.Format(dateLayout),
			Category:    string(op.Category),
			Amount:      json.Number(op.Amount.String()),
			Description: op.Description,
		}, "  ", "  ")
		if err != nil {
			return nil, err
		}

		buf.WriteString("  ")
		buf.Write(key)
		buf.WriteString(": ")
		buf.Write(val)

		if i < len(snap.ops)-1 {
			buf.WriteByte(',')
		}

		buf.WriteByte('\n')
	}

	buf.WriteString("}\n")

	return buf.Bytes(), nil
}
