package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"doanhso/internal/core"
	"doanhso/internal/grid/xlsx"
	applog "doanhso/internal/log"
)

// User-facing messages, matching the language of the sales export template.
const (
	msgBadFileType   = "Vui lòng chỉ chọn file Excel có định dạng .xlsx"
	msgDecodeFailed  = "Không thể đọc nội dung file. Đảm bảo file là định dạng Excel .xlsx hợp lệ."
	msgBadTemplate   = "Kiểm tra lại file của bạn, có thể nó đã sai định dạng file mẫu cho phép"
	msgNoData        = "Chưa có dữ liệu. Vui lòng tải file lên trước."
	msgNoDate        = "Vui lòng chọn ngày!"
	msgBadTimeRange  = "Thời gian không hợp lệ!"
	msgStartRequired = "Bắt buộc chọn giờ bắt đầu"
	msgEndRequired   = "Bắt buộc chọn giờ kết thúc"
)

// pageData feeds the index template.
type pageData struct {
	HasData      bool
	Dates        []string
	SingleDate   string
	MultiDate    bool
	SelectedDate string
	Start        string
	End          string
	HasTotal     bool
	Total        string
	Error        string
	SheetsMode   bool
}

func (s *Server) pageFromState() pageData {
	data := pageData{SheetsMode: s.source != nil}
	snap, _ := s.state.current()
	if snap == nil {
		return data
	}
	data.HasData = true
	data.Dates = snap.Dates
	if d, ok := snap.SingleDate(); ok {
		data.SingleDate = d
	}
	data.MultiDate = len(snap.Dates) > 1
	return data
}

func (s *Server) renderIndex(w http.ResponseWriter, r *http.Request, status int, data pageData) {
	logger := applog.FromContext(r.Context())
	if s.templates == nil {
		logger.ErrorContext(r.Context(), "Templates not loaded",
			applog.FieldPath, r.URL.Path)
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(status)
	if err := s.templates.ExecuteTemplate(w, "index.html", data); err != nil {
		logger.ErrorContext(r.Context(), "Index template execution failed",
			applog.FieldError, err)
	}
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	s.renderIndex(w, r, http.StatusOK, s.pageFromState())
}

// handleUpload decodes a submitted .xlsx workbook and replaces the current
// snapshot on success. Any failure leaves the previous snapshot intact.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	if s.source != nil {
		// Sheets mode reads the configured spreadsheet; see /refresh.
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.maxUpload)
	if err := r.ParseMultipartForm(s.maxUpload); err != nil {
		s.logger.WarnContext(r.Context(), "Failed to parse multipart form",
			applog.FieldError, err)
		data := s.pageFromState()
		data.Error = msgDecodeFailed
		s.renderIndex(w, r, http.StatusBadRequest, data)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		s.logger.WarnContext(r.Context(), "Missing upload file field",
			applog.FieldError, err)
		data := s.pageFromState()
		data.Error = msgDecodeFailed
		s.renderIndex(w, r, http.StatusBadRequest, data)
		return
	}
	defer file.Close()

	if !strings.EqualFold(filepath.Ext(header.Filename), ".xlsx") {
		s.logger.WarnContext(r.Context(), "Rejected upload with unsupported extension",
			applog.FieldFilename, header.Filename,
			applog.FieldError, core.ErrUnsupportedFileType)
		data := s.pageFromState()
		data.Error = msgBadFileType
		s.renderIndex(w, r, http.StatusUnsupportedMediaType, data)
		return
	}

	g, err := xlsx.Decode(file)
	if err != nil {
		s.logger.WarnContext(r.Context(), "Workbook decode failed",
			applog.FieldFilename, header.Filename,
			applog.FieldError, err)
		data := s.pageFromState()
		data.Error = msgDecodeFailed
		s.renderIndex(w, r, http.StatusUnprocessableEntity, data)
		return
	}

	s.extractAndReplace(w, r, g, header.Filename, header.Size)
}

// handleRefresh re-reads the configured sheet source and re-extracts.
func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	if s.source == nil {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	g, err := s.source.ReadGrid(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "Sheet read failed", applog.FieldError, err)
		data := s.pageFromState()
		data.Error = msgDecodeFailed
		s.renderIndex(w, r, http.StatusBadGateway, data)
		return
	}

	s.extractAndReplace(w, r, g, "", 0)
}

func (s *Server) extractAndReplace(w http.ResponseWriter, r *http.Request, g core.Grid, filename string, size int64) {
	snap, err := s.extractor.Extract(g)
	if err != nil {
		s.logger.WarnContext(r.Context(), "Extraction failed",
			applog.FieldFilename, filename,
			applog.FieldRows, len(g),
			applog.FieldError, err)
		data := s.pageFromState()
		data.Error = msgBadTemplate
		s.renderIndex(w, r, http.StatusUnprocessableEntity, data)
		return
	}

	gen := s.state.replace(snap)
	s.logger.InfoContext(r.Context(), "Snapshot replaced",
		applog.FieldFilename, filename,
		applog.FieldFileSize, size,
		applog.FieldRows, len(g),
		applog.FieldTransactions, len(snap.Transactions),
		applog.FieldDates, len(snap.Dates),
		applog.FieldGeneration, gen)

	s.renderIndex(w, r, http.StatusOK, s.pageFromState())
}

// handleQuery sums the amounts of the transactions falling inside the
// submitted [start, end) window on the selected date.
func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		data := s.pageFromState()
		data.Error = msgBadTimeRange
		s.renderIndex(w, r, http.StatusBadRequest, data)
		return
	}

	start := sanitizeInput(r.Form.Get("start"))
	end := sanitizeInput(r.Form.Get("end"))
	date := sanitizeInput(r.Form.Get("date"))

	data := s.pageFromState()
	data.SelectedDate = date
	data.Start = start
	data.End = end

	if start == "" {
		data.Error = msgStartRequired
		s.renderIndex(w, r, http.StatusUnprocessableEntity, data)
		return
	}
	if end == "" {
		data.Error = msgEndRequired
		s.renderIndex(w, r, http.StatusUnprocessableEntity, data)
		return
	}

	snap, gen := s.state.current()
	if snap == nil {
		data.Error = msgNoData
		s.renderIndex(w, r, http.StatusUnprocessableEntity, data)
		return
	}

	// Auto-select the date when the file covers exactly one.
	if date == "" {
		if d, ok := snap.SingleDate(); ok {
			date = d
			data.SelectedDate = d
		}
	}

	cacheKey := fmt.Sprintf("%d|%s|%s|%s", gen, date, start, end)
	total, cached := s.totalsCache.Get(cacheKey)
	if !cached {
		var err error
		total, err = core.SumWindow(snap.Transactions, date, start, end)
		if err != nil {
			switch {
			case errors.Is(err, core.ErrNoDateSelected):
				data.Error = msgNoDate
			case errors.Is(err, core.ErrInvalidTimeRange):
				data.Error = msgBadTimeRange
			default:
				data.Error = msgBadTimeRange
			}
			s.logger.WarnContext(r.Context(), "Query rejected",
				applog.FieldDate, date,
				applog.FieldWindowStart, start,
				applog.FieldWindowEnd, end,
				applog.FieldError, err)
			s.renderIndex(w, r, http.StatusUnprocessableEntity, data)
			return
		}
		s.totalsCache.Set(cacheKey, total)
	}

	s.logger.InfoContext(r.Context(), "Window total computed",
		applog.FieldDate, date,
		applog.FieldWindowStart, start,
		applog.FieldWindowEnd, end,
		applog.FieldTotal, total,
		"cache_hit", cached)

	data.HasTotal = true
	data.Total = formatGrouped(total)
	s.renderIndex(w, r, http.StatusOK, data)
}

// handleHealth performs basic liveness check
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	health := map[string]interface{}{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
		"uptime":    time.Since(s.started).String(),
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(health)
}

// handleReady performs readiness check with dependency verification
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	status := "ready"
	httpStatus := http.StatusOK
	checks := make(map[string]interface{})

	if s.templates == nil {
		checks["templates"] = "failed: templates not loaded"
		status = "not_ready"
		httpStatus = http.StatusServiceUnavailable
	} else {
		checks["templates"] = "ok"
	}

	mode := "upload"
	if s.source != nil {
		mode = "sheets"
	}
	checks["grid_source"] = mode

	snap, gen := s.state.current()
	snapshotCheck := map[string]interface{}{
		"generation": gen,
		"loaded":     snap != nil,
	}
	if snap != nil {
		snapshotCheck["transactions"] = len(snap.Transactions)
		snapshotCheck["dates"] = len(snap.Dates)
	}
	checks["snapshot"] = snapshotCheck

	checks["cache"] = map[string]interface{}{
		"total_entries": s.totalsCache.Size(),
		"status":        "ok",
	}

	response := map[string]interface{}{
		"status":    status,
		"timestamp": time.Now().Format(time.RFC3339),
		"checks":    checks,
	}

	w.WriteHeader(httpStatus)
	json.NewEncoder(w).Encode(response)
}
