package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/campusdev/gestion-escolar-api/internal/models"
	appErrors "github.com/campusdev/gestion-escolar-api/pkg/errors"
)

type auditoriaRepository interface {
	Create(ctx context.Context, registro *models.RegistroAuditoria) error
	List(ctx context.Context, usuarioID string, limit int) ([]models.RegistroAuditoria, error)
}

// AuditoriaService records mutating requests. Writes are fire-and-forget
// from the caller's perspective: a failed audit insert is logged but never
// fails the audited request.
type AuditoriaService struct {
	repo   auditoriaRepository
	logger *zap.Logger
}

// NewAuditoriaService constructs the audit service.
func NewAuditoriaService(repo auditoriaRepository, logger *zap.Logger) *AuditoriaService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuditoriaService{repo: repo, logger: logger}
}

// Registrar appends one audit event. Errors are swallowed after logging.
func (s *AuditoriaService) Registrar(ctx context.Context, registro *models.RegistroAuditoria) {
	if err := s.repo.Create(ctx, registro); err != nil {
		s.logger.Error("audit write failed",
			zap.String("accion", registro.Accion),
			zap.String("endpoint", registro.Endpoint),
			zap.Error(err))
	}
}

// List returns recent audit events, newest first, optionally filtered by
// the acting user.
func (s *AuditoriaService) List(ctx context.Context, usuarioID string, limit int) ([]models.RegistroAuditoria, error) {
	registros, err := s.repo.List(ctx, usuarioID, limit)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list auditoria")
	}
	return registros, nil
}
