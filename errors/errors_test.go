package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/kbukum/depbatch/dag"
	"github.com/kbukum/depbatch/dag/testutil"
)

func TestAppError_New_Success(t *testing.T) {
	err := New(ErrCodeNotFound, "not found", http.StatusNotFound)
	if err.Code != ErrCodeNotFound {
		t.Errorf("expected code %s, got %s", ErrCodeNotFound, err.Code)
	}
	if err.Message != "not found" {
		t.Errorf("expected message 'not found', got %q", err.Message)
	}
	if err.HTTPStatus != http.StatusNotFound {
		t.Errorf("expected status %d, got %d", http.StatusNotFound, err.HTTPStatus)
	}
}

func TestAppError_NotFound_EmptyID(t *testing.T) {
	err := NotFound("project", "")
	if _, ok := err.Details["id"]; ok {
		t.Error("expected no 'id' key in details when id is empty")
	}
	if err.Details["resource"] != "project" {
		t.Errorf("expected resource=project, got %v", err.Details["resource"])
	}
}

func TestAppError_ParseError_Position(t *testing.T) {
	cause := fmt.Errorf("bad token")
	err := ParseError("projects.yml", 4, 7, cause)
	if err.Code != ErrCodeParse {
		t.Fatalf("expected PARSE_ERROR, got %s", err.Code)
	}
	if err.Details["line"] != 4 || err.Details["column"] != 7 {
		t.Fatalf("expected line 4 column 7, got %v", err.Details)
	}
	if !strings.Contains(err.Message, "projects.yml:4:7") {
		t.Fatalf("expected position in message, got %q", err.Message)
	}
	if err.Unwrap() != cause {
		t.Fatal("expected cause to be kept")
	}
}

func TestAppError_ParseError_NoPosition(t *testing.T) {
	err := ParseError("projects.hcl", 0, 0, nil)
	if _, ok := err.Details["line"]; ok {
		t.Fatal("expected no line detail")
	}
	if err.Message != "Unable to parse projects.hcl" {
		t.Fatalf("unexpected message %q", err.Message)
	}
}

func TestAppError_WithDetails_Merge(t *testing.T) {
	err := InvalidInput("format", "unknown")
	err.WithDetails(map[string]any{"allowed": []string{"json"}, "field": "output"})
	if err.Details["field"] != "output" {
		t.Errorf("expected field to be overwritten, got %v", err.Details["field"])
	}
	if _, ok := err.Details["allowed"]; !ok {
		t.Error("expected allowed to be merged")
	}
}

func TestAppError_WithDetail_NilMap(t *testing.T) {
	err := New(ErrCodeInternal, "boom", http.StatusInternalServerError)
	err.WithDetail("k", "v")
	if err.Details["k"] != "v" {
		t.Errorf("expected k=v, got %v", err.Details["k"])
	}
}

func TestAppError_Error_Format(t *testing.T) {
	err := MissingField("name")
	if got := err.Error(); got != "MISSING_FIELD: Missing required field: name" {
		t.Errorf("unexpected format %q", got)
	}
	err.WithCause(fmt.Errorf("empty"))
	if !strings.HasSuffix(err.Error(), "(cause: empty)") {
		t.Errorf("expected cause suffix, got %q", err.Error())
	}
}

func TestAppError_Unwrap_Success(t *testing.T) {
	cause := fmt.Errorf("disk gone")
	wrapped := fmt.Errorf("loading: %w", Internal(cause))
	if !stderrors.Is(wrapped, cause) {
		t.Fatal("expected errors.Is to reach the cause")
	}
	appErr, ok := AsAppError(wrapped)
	if !ok || appErr.Code != ErrCodeInternal {
		t.Fatalf("expected wrapped INTERNAL_ERROR, got %v", wrapped)
	}
	if !IsAppError(wrapped) {
		t.Fatal("expected IsAppError to see through wrapping")
	}
}

func TestAppError_Constructors_Table(t *testing.T) {
	tests := []struct {
		name   string
		err    *AppError
		code   ErrorCode
		status int
	}{
		{"InvalidInput", InvalidInput("f", "r"), ErrCodeInvalidInput, http.StatusBadRequest},
		{"Validation", Validation("m"), ErrCodeInvalidInput, http.StatusBadRequest},
		{"MissingField", MissingField("f"), ErrCodeMissingField, http.StatusBadRequest},
		{"NotFound", NotFound("source", "git"), ErrCodeNotFound, http.StatusNotFound},
		{"ParseError", ParseError("f", 0, 0, nil), ErrCodeParse, http.StatusBadRequest},
		{"UnsupportedVersion", UnsupportedVersion("2.0", "1.0"), ErrCodeUnsupportedVersion, http.StatusBadRequest},
		{"CyclicGraph", CyclicGraph([]string{"a", "a"}), ErrCodeCyclicGraph, http.StatusUnprocessableEntity},
		{"DependencyResolution", DependencyResolution([]string{"a"}), ErrCodeDependencyResolution, http.StatusUnprocessableEntity},
		{"Internal", Internal(nil), ErrCodeInternal, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Code != tt.code {
				t.Errorf("expected code %s, got %s", tt.code, tt.err.Code)
			}
			if tt.err.HTTPStatus != tt.status {
				t.Errorf("expected status %d, got %d", tt.status, tt.err.HTTPStatus)
			}
		})
	}
}

func TestAppError_ToResponse_Success(t *testing.T) {
	resp := NotFound("policy", "nightly").ToResponse()
	if resp.Error.Code != ErrCodeNotFound {
		t.Errorf("expected NOT_FOUND, got %s", resp.Error.Code)
	}
	if resp.Error.Details["id"] != "nightly" {
		t.Errorf("expected id=nightly, got %v", resp.Error.Details["id"])
	}
}

// --- ExitCode ---

func TestWrap(t *testing.T) {
	if Wrap(nil) != nil {
		t.Fatal("expected nil for nil error")
	}

	nf := NotFound("project", "web")
	if got := Wrap(fmt.Errorf("loading: %w", nf)); got != nf {
		t.Fatalf("expected wrapped AppError to be returned, got %v", got)
	}

	cause := stderrors.New("disk on fire")
	got := Wrap(cause)
	if got.Code != ErrCodeInternal || got.HTTPStatus != http.StatusInternalServerError {
		t.Fatalf("expected internal error, got %+v", got)
	}
	if !stderrors.Is(got, cause) {
		t.Fatal("expected cause to be kept")
	}
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitOK},
		{"plain", fmt.Errorf("x"), ExitFailure},
		{"input", MissingField("name"), ExitInput},
		{"parse", ParseError("f", 1, 1, nil), ExitInput},
		{"cycle", CyclicGraph(nil), ExitGraph},
		{"resolution", fmt.Errorf("wrapped: %w", DependencyResolution(nil)), ExitGraph},
		{"internal", Internal(nil), ExitFailure},
		{"unknown code", New("SOMETHING", "x", 500), ExitFailure},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExitCode(tt.err); got != tt.want {
				t.Errorf("expected %d, got %d", tt.want, got)
			}
		})
	}
}

// --- FromGraph ---

func payload(n dag.Node) string {
	return fmt.Sprint(n.(*testutil.Task).Payload())
}

func TestFromGraph_Cycle(t *testing.T) {
	g := testutil.NewGraph().Add("a").Add("b", "a").Link("a", "b")
	_, err := dag.DependsOnRecursive(g.Task("b"))

	appErr := FromGraph(err, payload)
	if appErr.Code != ErrCodeCyclicGraph {
		t.Fatalf("expected CYCLIC_GRAPH, got %s", appErr.Code)
	}
	path, _ := appErr.Details["path"].([]string)
	if strings.Join(path, ",") != "b,a,b" {
		t.Fatalf("expected path b,a,b, got %v", path)
	}
	if !stderrors.Is(appErr, dag.ErrCyclicGraph) {
		t.Fatal("expected dag sentinel to stay reachable")
	}
}

func TestFromGraph_Resolution(t *testing.T) {
	g := testutil.NewGraph().Add("a").Add("b", "a")
	_, err := dag.BuildBatches(g.Set("b"))

	appErr := FromGraph(err, payload)
	if appErr.Code != ErrCodeDependencyResolution {
		t.Fatalf("expected DEPENDENCY_RESOLUTION, got %s", appErr.Code)
	}
	unresolved, _ := appErr.Details["unresolved"].([]string)
	if len(unresolved) != 1 || unresolved[0] != "b" {
		t.Fatalf("expected [b], got %v", unresolved)
	}
}

func TestFromGraph_InvalidNode(t *testing.T) {
	_, err := dag.BuildRecursiveDependencySet([]dag.Node{nil}, false)
	if got := FromGraph(err, payload).Code; got != ErrCodeInvalidInput {
		t.Fatalf("expected INVALID_INPUT, got %s", got)
	}
}

func TestFromGraph_Passthrough(t *testing.T) {
	if FromGraph(nil, payload) != nil {
		t.Fatal("expected nil for nil error")
	}
	orig := NotFound("project", "x")
	if FromGraph(fmt.Errorf("ctx: %w", orig), payload) != orig {
		t.Fatal("expected AppError to pass through")
	}
	if got := FromGraph(fmt.Errorf("io"), payload).Code; got != ErrCodeInternal {
		t.Fatalf("expected INTERNAL_ERROR, got %s", got)
	}
}
