package handlers

import (
	"database/sql"
	"strings"
	"testing"

	"github.com/qanoot-iftekhar/mywebsite/models"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type execResult struct{}

func (execResult) LastInsertId() (int64, error) { return 0, nil }
func (execResult) RowsAffected() (int64, error) { return 1, nil }

// scriptedTx fails order inserts with the scripted errors in order,
// then succeeds. Savepoint statements always succeed.
type scriptedTx struct {
	insertErrs []error
	queries    []string
	numbers    []string
}

func (s *scriptedTx) Exec(query string, args ...interface{}) (sql.Result, error) {
	s.queries = append(s.queries, query)
	if !strings.Contains(query, "INSERT INTO orders") {
		return execResult{}, nil
	}

	s.numbers = append(s.numbers, args[3].(string))
	if len(s.insertErrs) > 0 {
		err := s.insertErrs[0]
		s.insertErrs = s.insertErrs[1:]
		if err != nil {
			return nil, err
		}
	}
	return execResult{}, nil
}

func (s *scriptedTx) count(fragment string) int {
	n := 0
	for _, q := range s.queries {
		if strings.Contains(q, fragment) {
			n++
		}
	}
	return n
}

func TestInsertOrderWithRetryRegeneratesNumberOnCollision(t *testing.T) {
	tx := &scriptedTx{insertErrs: []error{&pq.Error{Code: "23505"}}}
	order := &models.Order{ID: uuid.New(), Status: models.OrderStatusPending}

	err := insertOrderWithRetry(tx, order, "ORD")
	require.NoError(t, err)

	// Two attempts, each with its own number and savepoint, and the
	// failed one rolled back to keep the transaction usable
	require.Len(t, tx.numbers, 2)
	assert.NotEqual(t, tx.numbers[0], tx.numbers[1])
	assert.Equal(t, tx.numbers[1], order.OrderNumber)
	assert.Equal(t, 2, tx.count("SAVEPOINT order_insert"))
	assert.Equal(t, 1, tx.count("ROLLBACK TO SAVEPOINT order_insert"))
}

func TestInsertOrderWithRetryPropagatesOtherErrors(t *testing.T) {
	fkErr := &pq.Error{Code: "23503"}
	tx := &scriptedTx{insertErrs: []error{fkErr}}
	order := &models.Order{ID: uuid.New()}

	err := insertOrderWithRetry(tx, order, "ORD")
	assert.Equal(t, fkErr, err)
	assert.Len(t, tx.numbers, 1)
	assert.Zero(t, tx.count("ROLLBACK TO SAVEPOINT"))
}

func TestInsertOrderWithRetryGivesUpAfterRepeatedCollisions(t *testing.T) {
	collisions := make([]error, 5)
	for i := range collisions {
		collisions[i] = &pq.Error{Code: "23505"}
	}
	tx := &scriptedTx{insertErrs: collisions}
	order := &models.Order{ID: uuid.New()}

	err := insertOrderWithRetry(tx, order, "ORD-GUEST")
	require.Error(t, err)
	assert.Len(t, tx.numbers, 5)
	assert.Equal(t, 5, tx.count("ROLLBACK TO SAVEPOINT order_insert"))
}
