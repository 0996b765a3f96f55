package service

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/campusdev/gestion-escolar-api/internal/models"
	appErrors "github.com/campusdev/gestion-escolar-api/pkg/errors"
	"github.com/campusdev/gestion-escolar-api/pkg/export"
)

type exportReporteLister interface {
	List(ctx context.Context, filter models.ReporteFilter) ([]models.ReporteDetail, int, error)
}

type exportEstudianteLookup interface {
	FindByID(ctx context.Context, id string) (*models.Estudiante, error)
}

type exportCalificacionLister interface {
	ListByEstudianteCurso(ctx context.Context, estudianteID, cursoID string) ([]models.CalificacionDetail, error)
	PromedioEstudiante(ctx context.Context, estudianteID, cursoID string) (*float64, error)
}

type exportAsistenciaResumen interface {
	ResumenEstudianteCurso(ctx context.Context, estudianteID, cursoID string) (map[models.EstadoAsistencia]int, error)
}

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type pdfRenderer interface {
	Render(data export.Dataset, title string) ([]byte, error)
}

// ExportService renders reports and report cards into downloadable files.
type ExportService struct {
	reportes       exportReporteLister
	estudiantes    exportEstudianteLookup
	calificaciones exportCalificacionLister
	asistencias    exportAsistenciaResumen
	csv            csvRenderer
	pdf            pdfRenderer
	logger         *zap.Logger
}

// NewExportService constructs the export service.
func NewExportService(reportes exportReporteLister, estudiantes exportEstudianteLookup, calificaciones exportCalificacionLister, asistencias exportAsistenciaResumen, csv csvRenderer, pdf pdfRenderer, logger *zap.Logger) *ExportService {
	if csv == nil {
		csv = export.NewCSVExporter()
	}
	if pdf == nil {
		pdf = export.NewPDFExporter()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		reportes:       reportes,
		estudiantes:    estudiantes,
		calificaciones: calificaciones,
		asistencias:    asistencias,
		csv:            csv,
		pdf:            pdf,
		logger:         logger,
	}
}

var reporteExportHeaders = []string{"Estudiante", "Tipo", "Severidad", "Titulo", "Creado por", "Fecha"}

// ExportReportes renders reports matching the filter as CSV or PDF bytes.
// The filter's pagination fields are stretched to one large page so the file
// covers the whole match set.
func (s *ExportService) ExportReportes(ctx context.Context, filter models.ReporteFilter, formato string) ([]byte, string, error) {
	filter.Page = 1
	filter.PageSize = 100
	reportes, _, err := s.reportes.List(ctx, filter)
	if err != nil {
		return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list reportes for export")
	}

	data := export.Dataset{Headers: reporteExportHeaders}
	for _, r := range reportes {
		data.Rows = append(data.Rows, map[string]string{
			"Estudiante": r.EstudianteNombre,
			"Tipo":       string(r.Tipo),
			"Severidad":  string(r.Severidad),
			"Titulo":     r.Titulo,
			"Creado por": r.CreadorNombre,
			"Fecha":      r.CreatedAt.Format("2006-01-02"),
		})
	}

	switch formato {
	case "pdf":
		out, err := s.pdf.Render(data, "Reportes")
		if err != nil {
			return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render reportes pdf")
		}
		return out, "application/pdf", nil
	case "", "csv":
		out, err := s.csv.Render(data)
		if err != nil {
			return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render reportes csv")
		}
		return out, "text/csv", nil
	default:
		return nil, "", appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown export formato %q", formato))
	}
}

// Boletin renders a student's report card for one course as PDF bytes:
// every grade, the unweighted average and the attendance totals.
func (s *ExportService) Boletin(ctx context.Context, estudianteID, cursoID string) ([]byte, error) {
	estudiante, err := s.estudiantes.FindByID(ctx, estudianteID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.NotFoundEntity("estudiante", "id", estudianteID)
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load estudiante")
	}
	calificaciones, err := s.calificaciones.ListByEstudianteCurso(ctx, estudianteID, cursoID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list calificaciones for boletin")
	}
	promedio, err := s.calificaciones.PromedioEstudiante(ctx, estudianteID, cursoID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to compute promedio for boletin")
	}
	totales, err := s.asistencias.ResumenEstudianteCurso(ctx, estudianteID, cursoID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to build resumen asistencia for boletin")
	}

	data := export.Dataset{Headers: []string{"Concepto", "Valor"}}
	for _, c := range calificaciones {
		data.Rows = append(data.Rows, map[string]string{
			"Concepto": c.EvaluacionTitulo,
			"Valor":    strconv.FormatFloat(c.Nota, 'f', 2, 64),
		})
	}
	valorPromedio := "sin notas"
	if promedio != nil {
		valorPromedio = strconv.FormatFloat(*promedio, 'f', 2, 64)
	}
	data.Rows = append(data.Rows, map[string]string{"Concepto": "Promedio", "Valor": valorPromedio})
	for _, estado := range []models.EstadoAsistencia{models.AsistenciaPresente, models.AsistenciaAusente, models.AsistenciaTarde, models.AsistenciaJustificado} {
		data.Rows = append(data.Rows, map[string]string{
			"Concepto": "Asistencias " + string(estado),
			"Valor":    strconv.Itoa(totales[estado]),
		})
	}

	out, err := s.pdf.Render(data, "Boletin de "+estudiante.NombreCompleto)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render boletin pdf")
	}
	return out, nil
}
