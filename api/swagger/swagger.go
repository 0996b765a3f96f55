package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Gestion Escolar API",
        "description": "REST backend for school administration",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Auth", "description": "Authentication and session management"},
        {"name": "Roles", "description": "Role catalog"},
        {"name": "Usuarios", "description": "User accounts"},
        {"name": "Estudiantes", "description": "Student roster"},
        {"name": "Profesores", "description": "Teacher roster"},
        {"name": "Asignaturas", "description": "Subject catalog"},
        {"name": "Periodos", "description": "Academic periods"},
        {"name": "Cursos", "description": "Course offerings"},
        {"name": "Unidades", "description": "Content units and topics"},
        {"name": "Inscripciones", "description": "Enrollments"},
        {"name": "Clases", "description": "Class sessions"},
        {"name": "Asistencias", "description": "Attendance"},
        {"name": "Evaluaciones", "description": "Assessments"},
        {"name": "Calificaciones", "description": "Grades"},
        {"name": "Actividades", "description": "Assignments and submissions"},
        {"name": "Horarios", "description": "Timetable"},
        {"name": "Reportes", "description": "Incident reports"},
        {"name": "Auditoria", "description": "Audit trail"},
        {"name": "Archivos", "description": "File storage"},
        {"name": "Exportaciones", "description": "CSV/PDF exports"}
    ],
    "paths": {
        "/auth/login": {
            "post": {
                "tags": ["Auth"],
                "summary": "Authenticate and obtain a token pair",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Invalid credentials"}
                }
            }
        },
        "/auth/refresh": {
            "post": {
                "tags": ["Auth"],
                "summary": "Rotate a refresh token",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/RefreshTokenRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/estudiantes": {
            "get": {
                "tags": ["Estudiantes"],
                "summary": "List students",
                "parameters": [
                    {"name": "search", "in": "query", "type": "string"},
                    {"name": "curso_id", "in": "query", "type": "string"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "limit", "in": "query", "type": "integer"},
                    {"name": "sort", "in": "query", "type": "string"},
                    {"name": "order", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Estudiantes"],
                "summary": "Create student",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateEstudianteRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/estudiantes/{id}": {
            "get": {
                "tags": ["Estudiantes"],
                "summary": "Get student",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found"}
                }
            },
            "put": {
                "tags": ["Estudiantes"],
                "summary": "Update student",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateEstudianteRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Estudiantes"],
                "summary": "Soft-delete student",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/estudiantes/{id}/boletin": {
            "get": {
                "tags": ["Exportaciones"],
                "summary": "Render a student's report card as PDF",
                "produces": ["application/pdf"],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "curso_id", "in": "query", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "PDF document"}
                }
            }
        },
        "/cursos": {
            "get": {
                "tags": ["Cursos"],
                "summary": "List course offerings",
                "parameters": [
                    {"name": "asignatura_id", "in": "query", "type": "string"},
                    {"name": "profesor_id", "in": "query", "type": "string"},
                    {"name": "periodo_id", "in": "query", "type": "string"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "limit", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Cursos"],
                "summary": "Create offering",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateCursoRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/cursos/con-cupo": {
            "get": {
                "tags": ["Cursos"],
                "summary": "List offerings with their live enrollment count",
                "parameters": [
                    {"name": "periodo_id", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/inscripciones": {
            "get": {
                "tags": ["Inscripciones"],
                "summary": "List enrollments",
                "parameters": [
                    {"name": "curso_id", "in": "query", "type": "string"},
                    {"name": "estudiante_id", "in": "query", "type": "string"},
                    {"name": "estado", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Inscripciones"],
                "summary": "Enroll a student into a course offering",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateInscripcionRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Duplicate enrollment or course full"}
                }
            }
        },
        "/actividades/{id}/entregas": {
            "post": {
                "tags": ["Actividades"],
                "summary": "Submit work for an assignment",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CrearEntregaRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Already submitted"},
                    "412": {"description": "Assignment window closed"}
                }
            }
        },
        "/horarios/conflictos": {
            "get": {
                "tags": ["Horarios"],
                "summary": "List room collisions across the timetable",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/reportes/export": {
            "get": {
                "tags": ["Exportaciones"],
                "summary": "Export incident reports as CSV or PDF",
                "produces": ["text/csv", "application/pdf"],
                "parameters": [
                    {"name": "formato", "in": "query", "type": "string", "enum": ["csv", "pdf"]},
                    {"name": "estudiante_id", "in": "query", "type": "string"},
                    {"name": "tipo", "in": "query", "type": "string"},
                    {"name": "severidad", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "Document"}
                }
            }
        },
        "/auditoria": {
            "get": {
                "tags": ["Auditoria"],
                "summary": "List recent audit records",
                "parameters": [
                    {"name": "usuario_id", "in": "query", "type": "string"},
                    {"name": "limit", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "LoginRequest": {
            "type": "object",
            "properties": {
                "username": {"type": "string"},
                "password": {"type": "string"}
            },
            "required": ["username", "password"]
        },
        "RefreshTokenRequest": {
            "type": "object",
            "properties": {
                "refresh_token": {"type": "string"}
            },
            "required": ["refresh_token"]
        },
        "CreateEstudianteRequest": {
            "type": "object",
            "properties": {
                "usuario_id": {"type": "string"},
                "codigo_estudiante": {"type": "string"},
                "nombre_completo": {"type": "string"},
                "fecha_nacimiento": {"type": "string"},
                "direccion": {"type": "string"},
                "telefono": {"type": "string"}
            },
            "required": ["codigo_estudiante", "nombre_completo", "fecha_nacimiento"]
        },
        "UpdateEstudianteRequest": {
            "type": "object",
            "properties": {
                "usuario_id": {"type": "string"},
                "codigo_estudiante": {"type": "string"},
                "nombre_completo": {"type": "string"},
                "fecha_nacimiento": {"type": "string"},
                "direccion": {"type": "string"},
                "telefono": {"type": "string"}
            },
            "required": ["codigo_estudiante", "nombre_completo", "fecha_nacimiento"]
        },
        "CreateCursoRequest": {
            "type": "object",
            "properties": {
                "asignatura_id": {"type": "string"},
                "profesor_id": {"type": "string"},
                "periodo_id": {"type": "string"},
                "grupo": {"type": "string"},
                "cupo": {"type": "integer"},
                "aula": {"type": "string"}
            },
            "required": ["asignatura_id", "profesor_id", "periodo_id", "grupo", "cupo"]
        },
        "CreateInscripcionRequest": {
            "type": "object",
            "properties": {
                "curso_id": {"type": "string"},
                "estudiante_id": {"type": "string"}
            },
            "required": ["curso_id", "estudiante_id"]
        },
        "CrearEntregaRequest": {
            "type": "object",
            "properties": {
                "estudiante_id": {"type": "string"},
                "archivo_url": {"type": "string"},
                "comentario": {"type": "string"}
            },
            "required": ["estudiante_id"]
        },
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "total_count": {"type": "integer"}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "pagination": {"$ref": "#/definitions/Pagination"},
                "meta": {"type": "object"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
