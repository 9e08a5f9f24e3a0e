package api

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/dcahoon3/mbr-shapefile-generator/pkg/export"
	"github.com/dcahoon3/mbr-shapefile-generator/pkg/httputil"
	"github.com/dcahoon3/mbr-shapefile-generator/pkg/metadata"
	"github.com/dcahoon3/mbr-shapefile-generator/pkg/plugins"
)

// exportTimeout bounds a background export started over the API.
const exportTimeout = 10 * time.Minute

func (s *Server) listPlugins(w http.ResponseWriter, r *http.Request) {
	filter := plugins.ListFilter{
		Category:            r.URL.Query().Get("category"),
		ExcludeDeprecated:   !httputil.ParseQueryBool(r, "deprecated", true),
		ExcludeExperimental: !httputil.ParseQueryBool(r, "experimental", true),
	}

	list := s.registry.List(filter)
	httputil.WriteSuccess(w, ListPluginsResponse{
		Plugins: list,
		Count:   len(list),
	})
}

func (s *Server) getPlugin(w http.ResponseWriter, r *http.Request) {
	name, ok := httputil.ParsePathStringOrError(w, r, "name")
	if !ok {
		return
	}

	plugin, err := s.registry.Get(name)
	if err != nil {
		httputil.WriteNotFoundError(w, err.Error())
		return
	}
	httputil.WriteSuccess(w, plugin)
}

// validateDescriptor validates a raw metadata.txt body and returns the
// result, errors and warnings included. The HTTP status is 200 either
// way; validity is in the payload.
func (s *Server) validateDescriptor(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, 1<<20))
	if err != nil {
		httputil.WriteBadRequest(w, "failed to read request body")
		return
	}
	if len(body) == 0 {
		httputil.WriteBadRequest(w, "empty request body")
		return
	}

	httputil.WriteSuccess(w, metadata.ValidateBytes(body))
}

func (s *Server) listCustomers(w http.ResponseWriter, r *http.Request) {
	customers, err := s.store.ListCustomers(r.Context())
	if err != nil {
		s.log.WithError(err).Error("failed to list customers")
		httputil.WriteInternalError(w, err)
		return
	}
	httputil.WriteSuccess(w, ListCustomersResponse{
		Customers: customers,
		Count:     len(customers),
	})
}

// createExport starts an asynchronous export job for a customer and
// returns 202 with the pending job. A repeated request while a job for the
// customer is still in flight returns that job instead of starting another.
func (s *Server) createExport(w http.ResponseWriter, r *http.Request) {
	customerID, ok := httputil.ParsePathStringOrError(w, r, "id")
	if !ok {
		return
	}

	job, created := s.jobs.Create(customerID)
	if created {
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), exportTimeout)
			defer cancel()
			s.jobs.Run(ctx, job.ID, s.exporter)
		}()
	}

	httputil.WriteAccepted(w, job)
}

func (s *Server) listExports(w http.ResponseWriter, r *http.Request) {
	jobs := s.jobs.List()
	httputil.WriteSuccess(w, ListExportsResponse{
		Jobs:  jobs,
		Count: len(jobs),
	})
}

func (s *Server) getExport(w http.ResponseWriter, r *http.Request) {
	jobID, ok := httputil.ParsePathStringOrError(w, r, "jobId")
	if !ok {
		return
	}

	job, found := s.jobs.Get(jobID)
	if !found {
		httputil.WriteNotFoundError(w, "export job not found: "+jobID)
		return
	}
	httputil.WriteSuccess(w, job)
}

// downloadExport streams a completed job's archive from the artifact store.
func (s *Server) downloadExport(w http.ResponseWriter, r *http.Request) {
	jobID, ok := httputil.ParsePathStringOrError(w, r, "jobId")
	if !ok {
		return
	}

	job, found := s.jobs.Get(jobID)
	if !found {
		httputil.WriteNotFoundError(w, "export job not found: "+jobID)
		return
	}
	if job.Status != export.JobCompleted {
		httputil.WriteErrorMessage(w, http.StatusConflict, "export job is "+string(job.Status))
		return
	}
	if s.artifacts == nil || job.Result == nil || job.Result.ArchiveKey == "" {
		httputil.WriteNotFoundError(w, "no archive available for job "+jobID)
		return
	}

	rc, err := s.artifacts.GetArchive(r.Context(), job.Result.ArchiveKey)
	if err != nil {
		s.log.WithError(err).WithField("key", job.Result.ArchiveKey).Error("failed to fetch archive")
		httputil.WriteInternalError(w, err)
		return
	}
	defer rc.Close()

	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", "attachment; filename=\""+job.Result.FileSet.BaseName+".zip\"")
	if _, err := io.Copy(w, rc); err != nil {
		s.log.WithError(err).Warn("archive download interrupted")
	}
}
