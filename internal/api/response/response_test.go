package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestPage(t *testing.T) {
	items := []string{"a", "b", "c", "d", "e"}

	tests := []struct {
		name       string
		page, size int
		wantData   []string
		wantPages  int
	}{
		{"first page", 1, 2, []string{"a", "b"}, 3},
		{"last page", 3, 2, []string{"e"}, 3},
		{"past the end", 7, 2, []string{}, 3},
		{"page below one", 0, 2, []string{"a", "b"}, 3},
		{"unbounded size", 1, 0, items, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			Page(rec, items, tt.page, tt.size)

			var body struct {
				Data       []string `json:"data"`
				TotalCount int      `json:"total_count"`
				TotalPages int      `json:"total_pages"`
			}
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if strings.Join(body.Data, ",") != strings.Join(tt.wantData, ",") {
				t.Errorf("data = %v, want %v", body.Data, tt.wantData)
			}
			if body.TotalCount != 5 || body.TotalPages != tt.wantPages {
				t.Errorf("totals = %d/%d, want 5/%d", body.TotalCount, body.TotalPages, tt.wantPages)
			}
		})
	}
}

func TestPage_Empty(t *testing.T) {
	rec := httptest.NewRecorder()
	Page(rec, []int{}, 1, 10)
	if !strings.Contains(rec.Body.String(), `"total_pages":1`) {
		t.Errorf("body = %s", rec.Body.String())
	}
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{"valid", `{"name":"x"}`, ""},
		{"malformed", `{"name":`, "invalid request body"},
		{"two values", `{"name":"x"}{"name":"y"}`, "single JSON object"},
		{"too large", `{"name":"` + strings.Repeat("x", MaxBodyBytes) + `"}`, "exceeds"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			var v struct {
				Name string `json:"name"`
			}
			err := Decode(httptest.NewRecorder(), req, &v)
			if tt.wantErr == "" {
				if err != nil || v.Name != "x" {
					t.Errorf("Decode() = %v, name %q", err, v.Name)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Decode() error = %v, want %q", err, tt.wantErr)
			}
		})
	}
}

func TestError(t *testing.T) {
	rec := httptest.NewRecorder()
	NotFound(rec, errors.New("deck not found"))

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d", rec.Code)
	}
	var body ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.Error != "Not Found" || body.Message != "deck not found" || body.Code != 404 {
		t.Errorf("body = %+v", body)
	}
}
