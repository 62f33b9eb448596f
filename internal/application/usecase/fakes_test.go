package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/diillson/cloudsec-dashboard-go/internal/adapter/driven/awscli"
	"github.com/diillson/cloudsec-dashboard-go/internal/domain/entity"
	"github.com/diillson/cloudsec-dashboard-go/internal/shared/types"
)

// fakeConsole captures console output for assertions.
type fakeConsole struct {
	lines []string
}

func (c *fakeConsole) record(format string, a ...interface{}) {
	c.lines = append(c.lines, fmt.Sprintf(format, a...))
}

func (c *fakeConsole) Print(a ...interface{})                     { c.lines = append(c.lines, fmt.Sprint(a...)) }
func (c *fakeConsole) Printf(format string, a ...interface{})     { c.record(format, a...) }
func (c *fakeConsole) Println(a ...interface{})                   { c.lines = append(c.lines, fmt.Sprint(a...)) }
func (c *fakeConsole) LogInfo(format string, a ...interface{})    { c.record(format, a...) }
func (c *fakeConsole) LogWarning(format string, a ...interface{}) { c.record(format, a...) }
func (c *fakeConsole) LogError(format string, a ...interface{})   { c.record(format, a...) }
func (c *fakeConsole) LogSuccess(format string, a ...interface{}) { c.record(format, a...) }
func (c *fakeConsole) Status(message string) types.StatusHandle   { return &fakeHandle{} }
func (c *fakeConsole) ProgressWithTotal(int) types.ProgressHandle { return &fakeHandle{} }
func (c *fakeConsole) CreateTable() types.TableInterface          { return &fakeTable{} }

func (c *fakeConsole) output() string {
	return strings.Join(c.lines, "\n")
}

type fakeHandle struct{}

func (h *fakeHandle) Update(string) {}
func (h *fakeHandle) Increment()    {}
func (h *fakeHandle) Stop()         {}

type fakeTable struct{}

func (t *fakeTable) AddColumn(string, ...interface{}) {}
func (t *fakeTable) AddRow(...interface{})            {}
func (t *fakeTable) Render() string                   { return "" }

// fakeFindingsRepo serves a fixed finding set or error.
type fakeFindingsRepo struct {
	findings []entity.Finding
	summary  *entity.Summary
	err      error
}

func (r *fakeFindingsRepo) LoadLatestFindings(string) ([]entity.Finding, error) {
	return r.findings, r.err
}

func (r *fakeFindingsRepo) LoadLatestSummary(string) (*entity.Summary, error) {
	return r.summary, r.err
}

// fakeIdentityRepo resolves a fixed caller identity.
type fakeIdentityRepo struct {
	account string
	arn     string
	err     error
}

func (r *fakeIdentityRepo) GetCallerIdentity(context.Context) (string, string, error) {
	return r.account, r.arn, r.err
}

// fakeRunner records every invocation and plays back canned results.
type fakeRunner struct {
	calls   [][]string
	results []awscli.CommandResult
	err     error
}

func (r *fakeRunner) Run(ctx context.Context, name string, args ...string) (awscli.CommandResult, error) {
	r.calls = append(r.calls, append([]string{name}, args...))
	if r.err != nil {
		return awscli.CommandResult{}, r.err
	}
	if len(r.results) == 0 {
		return awscli.CommandResult{}, nil
	}
	result := r.results[0]
	if len(r.results) > 1 {
		r.results = r.results[1:]
	}
	return result, nil
}
