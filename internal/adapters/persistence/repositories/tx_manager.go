package repositories

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

// Repos are the repositories a lifecycle transition writes through.
// Inside WithinTransaction they are bound to the open transaction.
type Repos struct {
	Members      MemberRepository
	Transitions  TransitionRepository
	Resignations ResignationRepository
}

// NewRepos binds the lifecycle repositories to db
func NewRepos(db *gorm.DB) Repos {
	return Repos{
		Members:      NewMemberRepository(db),
		Transitions:  NewTransitionRepository(db),
		Resignations: NewResignationRepository(db),
	}
}

// TxManager runs a unit of work in one database transaction
type TxManager interface {
	WithinTransaction(ctx context.Context, fn func(r Repos) error) error
}

type gormTxManager struct {
	db   *gorm.DB
	opts *sql.TxOptions
}

// NewTxManager creates a transaction manager. opts may be nil to use the
// driver's default isolation level.
func NewTxManager(db *gorm.DB, opts *sql.TxOptions) TxManager {
	return &gormTxManager{db: db, opts: opts}
}

// WithinTransaction commits when fn returns nil and rolls back otherwise
func (m *gormTxManager) WithinTransaction(ctx context.Context, fn func(r Repos) error) error {
	run := func(tx *gorm.DB) error {
		return fn(NewRepos(tx))
	}
	if m.opts == nil {
		return m.db.WithContext(ctx).Transaction(run)
	}
	return m.db.WithContext(ctx).Transaction(run, m.opts)
}
