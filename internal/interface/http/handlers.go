package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/course-hub/coursehub/internal/application/result"
	"github.com/course-hub/coursehub/internal/domain/shared"
	"github.com/course-hub/coursehub/pkg/logger"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
)

const (
	msgInternal         = "an unexpected error occurred"
	msgRateLimited      = "too many requests, please try again later"
	msgMalformedBody    = "request body is not valid JSON"
	msgRouteNotFound    = "route not found"
	msgMethodNotAllowed = "method not allowed"
)

// ══════════════════════════════════════════════════════════════════════════════
// HEALTH & STATUS HANDLERS
// ══════════════════════════════════════════════════════════════════════════════

// handleRoot serves the root endpoint with basic API information.
func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"name":    "CourseHub API",
		"version": s.config.Version,
		"endpoints": map[string]string{
			"health":        "/health",
			"courses":       "/api/courses",
			"instructors":   "/api/instructors",
			"lessons":       "/api/lessons",
			"exams":         "/api/exams",
			"students":      "/api/students",
			"registrations": "/api/registrations",
		},
	})
}

// handleHealth handles the health check endpoint.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.deps.HealthChecker != nil {
		status := s.deps.HealthChecker.Check(r.Context())
		if !status.Healthy {
			writeJSON(w, http.StatusServiceUnavailable, status)
			return
		}
		writeJSON(w, http.StatusOK, status)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "healthy",
		"uptime":  s.Uptime().String(),
		"version": s.config.Version,
	})
}

// handleReady handles the readiness probe endpoint (for Kubernetes).
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if s.deps.HealthChecker != nil {
		status := s.deps.HealthChecker.Check(r.Context())
		if !status.Ready {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "not_ready",
				"reason": status.Message,
			})
			return
		}
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

// handleLive handles the liveness probe endpoint (for Kubernetes).
func (s *Server) handleLive(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "alive"})
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, result.Fail(msgRouteNotFound))
}

func (s *Server) handleMethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusMethodNotAllowed, result.Fail(msgMethodNotAllowed))
}

// ══════════════════════════════════════════════════════════════════════════════
// MANAGER ADAPTERS
// ══════════════════════════════════════════════════════════════════════════════

// statusFor maps a manager outcome to a status code: the wrapper is always
// the body, only the code differs.
func statusFor(success bool) int {
	if success {
		return http.StatusOK
	}
	return http.StatusBadRequest
}

// listHandler serves a collection read. ?track=true loads with tracking.
func listHandler[D any](s *Server, op string, fn func(context.Context, bool) (result.DataResult[D], error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res, err := fn(r.Context(), getQueryParamBool(r, "track"))
		if err != nil {
			s.fault(w, r, op, err)
			return
		}
		writeJSON(w, statusFor(res.Success), res)
	}
}

// getHandler serves a read keyed by the {id} path variable.
func getHandler[D any](s *Server, op string, fn func(context.Context, string, bool) (result.DataResult[D], error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res, err := fn(r.Context(), mux.Vars(r)["id"], getQueryParamBool(r, "track"))
		if err != nil {
			s.fault(w, r, op, err)
			return
		}
		writeJSON(w, statusFor(res.Success), res)
	}
}

// writeHandler decodes and validates a DTO body, then hands it to fn.
func writeHandler[In any](s *Server, op string, fn func(context.Context, *In) (result.Result, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// A JSON null leaves in nil; the manager reports it as a failed outcome.
		var in *In
		if err := decodeJSON(r, &in); err != nil {
			writeJSON(w, http.StatusBadRequest, result.Fail(msgMalformedBody))
			return
		}
		if in != nil {
			if err := s.validate.StructCtx(r.Context(), in); err != nil {
				writeJSON(w, http.StatusBadRequest, result.Fail(validationMessage(err)))
				return
			}
		}

		res, err := fn(r.Context(), in)
		if err != nil {
			s.fault(w, r, op, err)
			return
		}
		writeJSON(w, statusFor(res.Success), res)
	}
}

func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// validationMessage flattens validator errors into one line, using JSON
// field names.
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}

	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		rule := fe.Tag()
		if fe.Param() != "" {
			rule += "=" + fe.Param()
		}
		parts = append(parts, fmt.Sprintf("%s: failed %s", fe.Field(), rule))
	}
	return "invalid input: " + strings.Join(parts, "; ")
}

// fault reports a manager error. Constraint violations the caller can fix
// become a 400 failure wrapper; everything else is a 500.
func (s *Server) fault(w http.ResponseWriter, r *http.Request, op string, err error) {
	log := logger.FromContext(r.Context()).With(logger.Operation(op), logger.Err(err))

	if shared.IsRejectedByConstraint(err) {
		log.Warn("request rejected by storage constraint")
		writeJSON(w, http.StatusBadRequest, result.Fail(clientMessage(err)))
		return
	}

	log.Error("request failed")
	writeJSON(w, http.StatusInternalServerError, result.Fail(msgInternal))
}

func clientMessage(err error) string {
	var de *shared.DomainError
	if errors.As(err, &de) && de.Message != "" {
		return de.Message
	}
	return err.Error()
}

// ══════════════════════════════════════════════════════════════════════════════
// ROUTES
// Detail routes are registered before {id} so they win the match.
// ══════════════════════════════════════════════════════════════════════════════

func (s *Server) courseRoutes(api *mux.Router) {
	m := s.deps.Managers.Courses
	api.HandleFunc("/courses", listHandler(s, "course.list", m.GetAll)).Methods(http.MethodGet)
	api.HandleFunc("/courses/detail", listHandler(s, "course.detail", m.GetAllCourseDetail)).Methods(http.MethodGet)
	api.HandleFunc("/courses/validate", writeHandler(s, "course.validate", m.Validate)).Methods(http.MethodPost)
	api.HandleFunc("/courses/{id}", getHandler(s, "course.get", m.GetByID)).Methods(http.MethodGet)
	api.HandleFunc("/courses", writeHandler(s, "course.create", m.Create)).Methods(http.MethodPost)
	api.HandleFunc("/courses", writeHandler(s, "course.update", m.Update)).Methods(http.MethodPut)
	api.HandleFunc("/courses", writeHandler(s, "course.remove", m.Remove)).Methods(http.MethodDelete)
}

func (s *Server) instructorRoutes(api *mux.Router) {
	m := s.deps.Managers.Instructors
	api.HandleFunc("/instructors", listHandler(s, "instructor.list", m.GetAll)).Methods(http.MethodGet)
	api.HandleFunc("/instructors/{id}", getHandler(s, "instructor.get", m.GetByID)).Methods(http.MethodGet)
	api.HandleFunc("/instructors", writeHandler(s, "instructor.create", m.Create)).Methods(http.MethodPost)
	api.HandleFunc("/instructors", writeHandler(s, "instructor.update", m.Update)).Methods(http.MethodPut)
	api.HandleFunc("/instructors", writeHandler(s, "instructor.remove", m.Remove)).Methods(http.MethodDelete)
}

func (s *Server) lessonRoutes(api *mux.Router) {
	m := s.deps.Managers.Lessons
	api.HandleFunc("/lessons", listHandler(s, "lesson.list", m.GetAll)).Methods(http.MethodGet)
	api.HandleFunc("/lessons/detail", listHandler(s, "lesson.detail", m.GetAllLessonDetail)).Methods(http.MethodGet)
	api.HandleFunc("/lessons/detail/{id}", getHandler(s, "lesson.detail_get", m.GetByIDLessonDetail)).Methods(http.MethodGet)
	api.HandleFunc("/lessons/{id}", getHandler(s, "lesson.get", m.GetByID)).Methods(http.MethodGet)
	api.HandleFunc("/lessons", writeHandler(s, "lesson.create", m.Create)).Methods(http.MethodPost)
	api.HandleFunc("/lessons", writeHandler(s, "lesson.update", m.Update)).Methods(http.MethodPut)
	api.HandleFunc("/lessons", writeHandler(s, "lesson.remove", m.Remove)).Methods(http.MethodDelete)
}

func (s *Server) examRoutes(api *mux.Router) {
	m := s.deps.Managers.Exams
	api.HandleFunc("/exams", listHandler(s, "exam.list", m.GetAll)).Methods(http.MethodGet)
	api.HandleFunc("/exams/detail", listHandler(s, "exam.detail", m.GetAllExamDetail)).Methods(http.MethodGet)
	api.HandleFunc("/exams/results", writeHandler(s, "exam.add_result", m.AddResult)).Methods(http.MethodPost)
	api.HandleFunc("/exams/{id}", getHandler(s, "exam.get", m.GetByID)).Methods(http.MethodGet)
	api.HandleFunc("/exams", writeHandler(s, "exam.create", m.Create)).Methods(http.MethodPost)
	api.HandleFunc("/exams", writeHandler(s, "exam.update", m.Update)).Methods(http.MethodPut)
	api.HandleFunc("/exams", writeHandler(s, "exam.remove", m.Remove)).Methods(http.MethodDelete)
}

func (s *Server) studentRoutes(api *mux.Router) {
	m := s.deps.Managers.Students
	api.HandleFunc("/students", listHandler(s, "student.list", m.GetAll)).Methods(http.MethodGet)
	api.HandleFunc("/students/{id}", getHandler(s, "student.get", m.GetByID)).Methods(http.MethodGet)
	api.HandleFunc("/students", writeHandler(s, "student.create", m.Create)).Methods(http.MethodPost)
	api.HandleFunc("/students", writeHandler(s, "student.update", m.Update)).Methods(http.MethodPut)
	api.HandleFunc("/students", writeHandler(s, "student.remove", m.Remove)).Methods(http.MethodDelete)
}

func (s *Server) registrationRoutes(api *mux.Router) {
	m := s.deps.Managers.Registrations
	api.HandleFunc("/registrations", listHandler(s, "registration.list", m.GetAll)).Methods(http.MethodGet)
	api.HandleFunc("/registrations/detail", listHandler(s, "registration.detail", m.GetAllRegistrationDetail)).Methods(http.MethodGet)
	api.HandleFunc("/registrations/detail/{id}", getHandler(s, "registration.detail_get", m.GetByIDRegistrationDetail)).Methods(http.MethodGet)
	api.HandleFunc("/registrations/{id}", getHandler(s, "registration.get", m.GetByID)).Methods(http.MethodGet)
	api.HandleFunc("/registrations", writeHandler(s, "registration.create", m.Create)).Methods(http.MethodPost)
	api.HandleFunc("/registrations", writeHandler(s, "registration.update", m.Update)).Methods(http.MethodPut)
	api.HandleFunc("/registrations", writeHandler(s, "registration.remove", m.Remove)).Methods(http.MethodDelete)
}
