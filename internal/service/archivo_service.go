package service

import (
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	appErrors "github.com/campusdev/gestion-escolar-api/pkg/errors"
)

type archivoStorage interface {
	SaveStream(filename string, r io.Reader) (string, error)
	Open(filename string) (*os.File, error)
	Delete(filename string) error
}

type archivoSigner interface {
	Generate(resourceID, relPath string) (string, time.Time, error)
	Parse(token string) (resourceID, relPath string, expiresAt time.Time, err error)
}

// ArchivoSubido describes a stored upload.
type ArchivoSubido struct {
	Ruta   string `json:"ruta"`
	Nombre string `json:"nombre"`
}

// EnlaceDescarga is a time-limited download token for a stored file.
type EnlaceDescarga struct {
	Token    string    `json:"token"`
	ExpiraEn time.Time `json:"expira_en"`
}

// ArchivoService stores uploaded documents on disk and hands out signed
// download tokens. Entity tables keep only the relative path it returns.
type ArchivoService struct {
	storage archivoStorage
	signer  archivoSigner
	logger  *zap.Logger
}

// NewArchivoService constructs the file service.
func NewArchivoService(storage archivoStorage, signer archivoSigner, logger *zap.Logger) *ArchivoService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ArchivoService{storage: storage, signer: signer, logger: logger}
}

// Subir stores an upload under the given folder with a random filename,
// keeping the original extension. The original name survives only in the
// returned metadata.
func (s *ArchivoService) Subir(carpeta, nombreOriginal string, r io.Reader) (*ArchivoSubido, error) {
	carpeta = strings.Trim(path.Clean(carpeta), "/")
	if carpeta == "" || carpeta == "." || strings.Contains(carpeta, "..") {
		return nil, appErrors.Clone(appErrors.ErrValidation, "invalid carpeta")
	}
	ext := strings.ToLower(filepath.Ext(nombreOriginal))
	relPath := path.Join(carpeta, uuid.NewString()+ext)
	if _, err := s.storage.SaveStream(relPath, r); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store archivo")
	}
	s.logger.Info("archivo stored", zap.String("ruta", relPath))
	return &ArchivoSubido{Ruta: relPath, Nombre: nombreOriginal}, nil
}

// GenerarEnlace issues a signed download token binding the owning resource
// to the stored path.
func (s *ArchivoService) GenerarEnlace(resourceID, relPath string) (*EnlaceDescarga, error) {
	token, expiraEn, err := s.signer.Generate(resourceID, relPath)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to sign download token")
	}
	return &EnlaceDescarga{Token: token, ExpiraEn: expiraEn}, nil
}

// Abrir validates a download token and opens the referenced file. The caller
// owns the returned handle.
func (s *ArchivoService) Abrir(token string) (*os.File, string, error) {
	_, relPath, _, err := s.signer.Parse(token)
	if err != nil {
		return nil, "", appErrors.Clone(appErrors.ErrUnauthorized, fmt.Sprintf("invalid download token: %v", err))
	}
	file, err := s.storage.Open(relPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, "", appErrors.NotFoundEntity("archivo", "ruta", relPath)
		}
		return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to open archivo")
	}
	return file, path.Base(relPath), nil
}

// Eliminar removes a stored file. Missing files are not an error.
func (s *ArchivoService) Eliminar(relPath string) error {
	if err := s.storage.Delete(relPath); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete archivo")
	}
	return nil
}
