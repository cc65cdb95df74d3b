package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"kada-admin/internal/adapters/persistence/models"
	"kada-admin/internal/adapters/persistence/repositories"
	"kada-admin/internal/core/domain"
	"kada-admin/internal/pkg/metrics"
	"kada-admin/internal/pkg/sanitize"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Operator-facing success messages
const (
	MsgMigrated            = "Ahli telah berjaya dipindahkan ke senarai ahli aktif"
	MsgApproved            = "Status telah berjaya dikemaskini kepada Lulus"
	MsgRejected            = "Permohonan telah berjaya ditolak dan dipindahkan ke senarai rejected"
	MsgReopened            = "Permohonan telah dibuka semula untuk semakan"
	MsgResigned            = "Permohonan berhenti telah diluluskan"
	MsgResignationRecorded = "Permohonan berhenti telah direkodkan"
	MsgStatusUpdated       = "Status telah berjaya dikemaskini"
)

// Lifecycle action labels used in logs and metrics
const (
	actionApprove            = "approve"
	actionReject             = "reject"
	actionUpdateStatus       = "update_status"
	actionRequestResignation = "request_resignation"
	actionApproveResignation = "approve_resignation"
)

// TransitionResult describes a completed lifecycle action
type TransitionResult struct {
	MemberID uint                  `json:"member_id"`
	Kind     domain.TransitionKind `json:"kind"`
	From     domain.MemberStatus   `json:"from"`
	To       domain.MemberStatus   `json:"to"`
	Message  string                `json:"message"`
}

// LifecycleService moves members through their lifecycle. Every action
// runs in one transaction covering the member row, any resignation
// request it resolves and the history row it appends.
type LifecycleService struct {
	tx    repositories.TxManager
	repos repositories.Repos
	log   *zap.Logger
	now   func() time.Time
}

// NewLifecycleService creates a new lifecycle service. repos serve the
// read-only queries made outside a transaction.
func NewLifecycleService(tx repositories.TxManager, repos repositories.Repos, log *zap.Logger) *LifecycleService {
	return &LifecycleService{
		tx:    tx,
		repos: repos,
		log:   log,
		now:   time.Now,
	}
}

// step is a planned status change
type step struct {
	kind    domain.TransitionKind
	to      domain.MemberStatus
	failure error  // wraps storage failures
	message string
	// after runs inside the transaction once the member row is updated
	after func() error
}

// Approve activates a pending member, or migrates a rejected one back
// into the active population
func (s *LifecycleService) Approve(ctx context.Context, memberID uint, who domain.Identity) (*TransitionResult, error) {
	return s.run(ctx, actionApprove, memberID, who, domain.ErrUpdate, func(r repositories.Repos, m *models.Member) (step, error) {
		return s.plan(ctx, r, m, domain.StatusActive, who)
	})
}

// Reject rejects a pending application
func (s *LifecycleService) Reject(ctx context.Context, memberID uint, who domain.Identity) (*TransitionResult, error) {
	return s.run(ctx, actionReject, memberID, who, domain.ErrRejection, func(r repositories.Repos, m *models.Member) (step, error) {
		return s.plan(ctx, r, m, domain.StatusRejected, who)
	})
}

// UpdateStatus sets the status named by raw. A blank status is a
// validation error and unknown names fail with domain.ErrInvalidStatus,
// both before anything is read or written. The change
// goes through the same transitions as the dedicated actions.
func (s *LifecycleService) UpdateStatus(ctx context.Context, memberID uint, raw string, who domain.Identity) (*TransitionResult, error) {
	if who.IsZero() {
		return nil, domain.ErrAuthenticationRequired
	}
	if strings.TrimSpace(raw) == "" {
		return nil, domain.Invalid("status", MsgFieldsRequired)
	}
	target, err := domain.ParseStatus(raw)
	if err != nil {
		metrics.Transitions.WithLabelValues(actionUpdateStatus, metrics.OutcomeRejected).Inc()
		s.log.Warn("rejected status update",
			zap.Uint("member_id", memberID),
			zap.String("status", raw),
			zap.Uint("admin_id", who.AdminID),
		)
		return nil, fmt.Errorf("%w: %q", err, raw)
	}

	res, err := s.run(ctx, actionUpdateStatus, memberID, who, domain.ErrUpdate, func(r repositories.Repos, m *models.Member) (step, error) {
		return s.plan(ctx, r, m, target, who)
	})
	if err != nil {
		return nil, err
	}
	res.Message = MsgStatusUpdated
	return res, nil
}

// ApproveResignation resigns a member who has a pending resignation
// request and marks the request approved
func (s *LifecycleService) ApproveResignation(ctx context.Context, memberID uint, who domain.Identity) (*TransitionResult, error) {
	return s.run(ctx, actionApproveResignation, memberID, who, domain.ErrResignation, func(r repositories.Repos, m *models.Member) (step, error) {
		return s.plan(ctx, r, m, domain.StatusResigned, who)
	})
}

// RequestResignation records a resignation request for an active member.
// An older pending request of the same member is superseded.
func (s *LifecycleService) RequestResignation(ctx context.Context, memberID uint, reason string, who domain.Identity) (*TransitionResult, error) {
	if who.IsZero() {
		return nil, domain.ErrAuthenticationRequired
	}
	reason = sanitize.Text(reason)
	if reason == "" {
		return nil, domain.Invalid("reason", "Sila nyatakan sebab permohonan berhenti")
	}

	var res *TransitionResult
	err := s.tx.WithinTransaction(ctx, func(r repositories.Repos) error {
		m, err := s.loadMember(ctx, r, memberID)
		if err != nil {
			return err
		}
		if m.Status != domain.StatusActive {
			return fmt.Errorf("%w: member is %s", domain.ErrInvalidTransition, m.Status)
		}

		superseded, err := r.Resignations.SupersedePending(ctx, m.ID)
		if err != nil {
			return err
		}
		if err := r.Resignations.Create(ctx, &models.ResignationRequest{
			MemberID: m.ID,
			Reason:   reason,
			State:    domain.ResignationPending,
		}); err != nil {
			return err
		}
		if err := r.Transitions.Create(ctx, &models.MemberTransition{
			MemberID:    m.ID,
			Kind:        domain.TransitionResignRequest,
			FromStatus:  m.Status,
			ToStatus:    m.Status,
			Description: reason,
			PerformedBy: who.AdminID,
			IPAddress:   who.IPAddress,
		}); err != nil {
			return err
		}

		if superseded > 0 {
			s.log.Info("superseded pending resignation",
				zap.Uint("member_id", m.ID),
				zap.Int64("requests", superseded),
			)
		}
		res = &TransitionResult{
			MemberID: m.ID,
			Kind:     domain.TransitionResignRequest,
			From:     m.Status,
			To:       m.Status,
			Message:  MsgResignationRecorded,
		}
		return nil
	})
	if err != nil {
		return nil, s.fail(actionRequestResignation, memberID, who, domain.ErrStorage, err)
	}

	s.succeed(actionRequestResignation, who, res)
	return res, nil
}

// History returns the status history of a member, newest first
func (s *LifecycleService) History(ctx context.Context, memberID uint) ([]*models.MemberTransition, error) {
	if _, err := s.loadMember(ctx, s.repos, memberID); err != nil {
		return nil, err
	}
	return s.repos.Transitions.ListByMember(ctx, memberID)
}

// PendingResignations lists resignation requests awaiting approval
func (s *LifecycleService) PendingResignations(ctx context.Context) ([]*models.ResignationRequest, error) {
	return s.repos.Resignations.ListPending(ctx)
}

// plan decides how m reaches status to. It returns a domain error when
// the change is not allowed.
func (s *LifecycleService) plan(ctx context.Context, r repositories.Repos, m *models.Member, to domain.MemberStatus, who domain.Identity) (step, error) {
	if to == domain.StatusResigned {
		return s.planResignation(ctx, r, m, who)
	}

	if !domain.CanTransition(m.Status, to) {
		return step{}, fmt.Errorf("%w: %s to %s", domain.ErrInvalidTransition, m.Status, to)
	}

	switch {
	case to == domain.StatusActive && m.Status == domain.StatusRejected:
		return step{kind: domain.TransitionMigrated, to: to, failure: domain.ErrMigration, message: MsgMigrated}, nil
	case to == domain.StatusActive:
		return step{kind: domain.TransitionApproved, to: to, failure: domain.ErrUpdate, message: MsgApproved}, nil
	case to == domain.StatusRejected:
		return step{kind: domain.TransitionRejected, to: to, failure: domain.ErrRejection, message: MsgRejected}, nil
	default:
		return step{kind: domain.TransitionReopened, to: to, failure: domain.ErrUpdate, message: MsgReopened}, nil
	}
}

func (s *LifecycleService) planResignation(ctx context.Context, r repositories.Repos, m *models.Member, who domain.Identity) (step, error) {
	req, err := r.Resignations.GetPendingByMember(ctx, m.ID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return step{}, fmt.Errorf("%w: no pending request for member %d", domain.ErrResignation, m.ID)
	}
	if err != nil {
		return step{failure: domain.ErrResignation}, err
	}
	if !domain.CanTransition(m.Status, domain.StatusResigned) {
		return step{}, fmt.Errorf("%w: %w: member is %s", domain.ErrResignation, domain.ErrInvalidTransition, m.Status)
	}

	return step{
		kind:    domain.TransitionResigned,
		to:      domain.StatusResigned,
		failure: domain.ErrResignation,
		message: MsgResigned,
		after: func() error {
			return r.Resignations.Resolve(ctx, req.ID, who.AdminID, s.now())
		},
	}, nil
}

// run loads the member, plans the change and applies it in one
// transaction. failure wraps storage errors raised before a plan exists.
func (s *LifecycleService) run(
	ctx context.Context,
	action string,
	memberID uint,
	who domain.Identity,
	failure error,
	choose func(r repositories.Repos, m *models.Member) (step, error),
) (*TransitionResult, error) {
	if who.IsZero() {
		return nil, domain.ErrAuthenticationRequired
	}

	var res *TransitionResult
	err := s.tx.WithinTransaction(ctx, func(r repositories.Repos) error {
		m, err := s.loadMember(ctx, r, memberID)
		if err != nil {
			return err
		}

		st, err := choose(r, m)
		if st.failure != nil {
			failure = st.failure
		}
		if err != nil {
			return err
		}

		if err := r.Members.UpdateStatus(ctx, m.ID, m.Version, st.to); err != nil {
			return err
		}
		if st.after != nil {
			if err := st.after(); err != nil {
				return err
			}
		}
		if err := r.Transitions.Create(ctx, &models.MemberTransition{
			MemberID:    m.ID,
			Kind:        st.kind,
			FromStatus:  m.Status,
			ToStatus:    st.to,
			Description: st.message,
			PerformedBy: who.AdminID,
			IPAddress:   who.IPAddress,
		}); err != nil {
			return err
		}

		res = &TransitionResult{
			MemberID: m.ID,
			Kind:     st.kind,
			From:     m.Status,
			To:       st.to,
			Message:  st.message,
		}
		return nil
	})
	if err != nil {
		return nil, s.fail(action, memberID, who, failure, err)
	}

	s.succeed(action, who, res)
	return res, nil
}

func (s *LifecycleService) loadMember(ctx context.Context, r repositories.Repos, id uint) (*models.Member, error) {
	m, err := r.Members.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: member %d", domain.ErrNotFound, id)
	}
	return m, err
}

// fail classifies err. Domain refusals pass through unchanged; anything
// else is a write failure wrapped in failure and logged.
func (s *LifecycleService) fail(action string, memberID uint, who domain.Identity, failure, err error) error {
	if isRefusal(err) {
		metrics.Transitions.WithLabelValues(action, metrics.OutcomeRejected).Inc()
		s.log.Warn("lifecycle action refused",
			zap.String("action", action),
			zap.Uint("member_id", memberID),
			zap.Uint("admin_id", who.AdminID),
			zap.Error(err),
		)
		return err
	}

	metrics.Transitions.WithLabelValues(action, metrics.OutcomeFailed).Inc()
	s.log.Error("lifecycle action failed",
		zap.String("action", action),
		zap.Uint("member_id", memberID),
		zap.Uint("admin_id", who.AdminID),
		zap.Error(err),
	)
	if errors.Is(err, domain.ErrConcurrentUpdate) {
		return fmt.Errorf("%w: %w", failure, err)
	}
	return fmt.Errorf("%w: %w: %w", failure, domain.ErrStorage, err)
}

func (s *LifecycleService) succeed(action string, who domain.Identity, res *TransitionResult) {
	metrics.Transitions.WithLabelValues(action, metrics.OutcomeSuccess).Inc()
	s.log.Info("member transition",
		zap.String("action", action),
		zap.Uint("member_id", res.MemberID),
		zap.String("kind", string(res.Kind)),
		zap.String("from", string(res.From)),
		zap.String("to", string(res.To)),
		zap.Uint("admin_id", who.AdminID),
	)
}

// isRefusal reports whether err is a domain decision rather than a
// storage failure
func isRefusal(err error) bool {
	for _, target := range []error{
		domain.ErrNotFound,
		domain.ErrInvalidTransition,
		domain.ErrInvalidStatus,
		domain.ErrResignation,
		domain.ErrAuthenticationRequired,
		domain.ErrValidation,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
