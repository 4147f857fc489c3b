package leave

import "juniorjoy/internal/platform/querier"

type Store struct {
	DB querier.Querier
}

func NewStore(q querier.Querier) *Store {
	return &Store{DB: q}
}
