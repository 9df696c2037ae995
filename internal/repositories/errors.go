package repository

import (
	"errors"
	"time"

	"github.com/lib/pq"
)

const DefaultPingTimeout = 5 * time.Second

var (
	ErrNotFound      = errors.New("record not found")
	ErrDuplicate     = errors.New("record already exists")
	ErrQuantityLimit = errors.New("quantity limit exceeded")
)

const pqUniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error

	return errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation
}
