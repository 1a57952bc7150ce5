package templates

import (
	"fmt"
	"strings"

	"larknotify/internal/card"
)

// mustBuild finalizes a catalog composition. Catalog functions drive the
// builder with fixed call sequences, so a build failure is a bug in this
// package rather than a runtime condition.
func mustBuild(b *card.Builder) *card.Card {
	c, err := b.Build()
	if err != nil {
		panic(err)
	}
	return c
}

func locationColumns(b *card.Builder, group, prefix string) *card.Builder {
	return b.Columns().
		Column("Group", group).
		Column("Prefix", prefix, card.WithWidth(card.WidthWeighted)).
		EndColumns()
}

// NetworkSubmissionStartParams describes a network set submission kickoff.
type NetworkSubmissionStartParams struct {
	Name          string
	NetworkType   string
	Group         string
	Prefix        string
	ExpectedCount int
	Metadata      []card.Field
}

// NetworkSubmissionStart announces that network submission began.
func NetworkSubmissionStart(p NetworkSubmissionStartParams) *card.Card {
	b := card.NewBuilder().
		Header("Network Submission Started", card.WithStatus("running"), card.WithSubtitle(p.Name)).
		Metadata("Network Set", p.Name).
		Metadata("Network Type", p.NetworkType)
	if p.ExpectedCount > 0 {
		b.Metadata("Expected Count", p.ExpectedCount)
	}
	if len(p.Metadata) > 0 {
		b.MetadataBlock(p.Metadata...)
	}
	locationColumns(b, p.Group, p.Prefix)
	return mustBuild(b)
}

// NetworkSubmissionCompleteParams describes a finished network submission.
type NetworkSubmissionCompleteParams struct {
	Name           string
	SubmittedCount int
	Group          string
	Prefix         string
	Duration       string
}

// NetworkSubmissionComplete announces that all networks were submitted.
func NetworkSubmissionComplete(p NetworkSubmissionCompleteParams) *card.Card {
	b := card.NewBuilder().
		Header("Network Submission Complete", card.WithStatus("success"), card.WithSubtitle(p.Name)).
		Metadata("Network Set", p.Name).
		Metadata("Submitted Count", p.SubmittedCount)
	if p.Duration != "" {
		b.Metadata("Duration", p.Duration)
	}
	locationColumns(b, p.Group, p.Prefix)
	return mustBuild(b)
}

// NetworkSubmissionFailureParams describes a failed network submission.
type NetworkSubmissionFailureParams struct {
	Name           string
	ErrorMessage   string
	SubmittedCount int
	Group          string
}

// NetworkSubmissionFailure announces a network submission failure with the
// error message in a collapsible panel.
func NetworkSubmissionFailure(p NetworkSubmissionFailureParams) *card.Card {
	b := card.NewBuilder().
		Header("Network Submission Failed", card.WithStatus("failed"), card.WithSubtitle(p.Name)).
		Metadata("Network Set", p.Name).
		Metadata("Submitted Before Failure", p.SubmittedCount).
		Metadata("Group", p.Group).
		Collapsible("Error Details", p.ErrorMessage, true)
	return mustBuild(b)
}

// JobSubmissionStartParams describes a job (task set) submission kickoff.
type JobSubmissionStartParams struct {
	JobTitle string
	Desc     string
	Group    string
	Prefix   string
	Msg      string
	Metadata []card.Field
}

// JobSubmissionStart announces that task submission began.
func JobSubmissionStart(p JobSubmissionStartParams) *card.Card {
	b := card.NewBuilder().
		Header("Job Submission Started", card.WithStatus("running"), card.WithSubtitle(p.JobTitle)).
		Metadata("Job", p.JobTitle)
	if p.Desc != "" {
		b.Metadata("Description", p.Desc)
	}
	if len(p.Metadata) > 0 {
		b.MetadataBlock(p.Metadata...)
	}
	if p.Msg != "" {
		b.Divider().Markdown(p.Msg)
	}
	locationColumns(b, p.Group, p.Prefix)
	return mustBuild(b)
}

// JobSubmissionCompleteParams describes a finished job submission. The job
// keeps running after submission, so the header stays on the running color.
type JobSubmissionCompleteParams struct {
	JobTitle       string
	SubmittedCount int
	Desc           string
	Group          string
	Prefix         string
	Duration       string
	Msg            string
}

// JobSubmissionComplete announces that all tasks of a job were submitted.
func JobSubmissionComplete(p JobSubmissionCompleteParams) *card.Card {
	b := card.NewBuilder().
		Header("Job Submission Complete", card.WithStatus("running"), card.WithSubtitle(p.JobTitle)).
		Metadata("Job", p.JobTitle).
		Metadata("Submitted Count", p.SubmittedCount)
	if p.Desc != "" {
		b.Metadata("Description", p.Desc)
	}
	if p.Duration != "" {
		b.Metadata("Duration", p.Duration)
	}
	if p.Msg != "" {
		b.Divider().Markdown(p.Msg)
	}
	locationColumns(b, p.Group, p.Prefix)
	return mustBuild(b)
}

// JobSubmissionFailureParams describes a failed job submission.
type JobSubmissionFailureParams struct {
	JobTitle       string
	ErrorMessage   string
	SubmittedCount int
	Group          string
}

// JobSubmissionFailure announces a job submission failure.
func JobSubmissionFailure(p JobSubmissionFailureParams) *card.Card {
	b := card.NewBuilder().
		Header("Job Submission Failed", card.WithStatus("failed"), card.WithSubtitle(p.JobTitle)).
		Metadata("Job", p.JobTitle).
		Metadata("Submitted Before Failure", p.SubmittedCount).
		Metadata("Group", p.Group).
		Collapsible("Error Details", p.ErrorMessage, true)
	return mustBuild(b)
}

// ConfigUploadCompleteParams describes an uploaded configuration bundle.
type ConfigUploadCompleteParams struct {
	ConfigName string
	FileCount  int
	Labels     []string
	Desc       string
}

// ConfigUploadComplete announces that a configuration bundle was uploaded.
func ConfigUploadComplete(p ConfigUploadCompleteParams) *card.Card {
	b := card.NewBuilder().
		Header("Configuration Uploaded", card.WithStatus("success"), card.WithSubtitle(p.ConfigName)).
		Metadata("Config Name", p.ConfigName).
		Metadata("File Count", p.FileCount)
	if p.Desc != "" {
		b.Metadata("Description", p.Desc)
	}
	if len(p.Labels) > 0 {
		lines := make([]string, 0, len(p.Labels))
		for _, label := range p.Labels {
			lines = append(lines, "- "+label)
		}
		b.Collapsible("Uploaded Files", strings.Join(lines, "\n"), false)
	}
	return mustBuild(b)
}

// TaskSetProgressEntry reports completion for one task set. Entries render in
// slice order.
type TaskSetProgressEntry struct {
	Name     string
	Complete int
	Total    int
}

// TaskSetProgressParams describes an in-flight progress snapshot.
type TaskSetProgressParams struct {
	Progress      []TaskSetProgressEntry
	OverallStatus string
}

// TaskSetProgress summarizes per-set completion with a markdown table.
func TaskSetProgress(p TaskSetProgressParams) *card.Card {
	rows := make([][]string, 0, len(p.Progress))
	for _, entry := range p.Progress {
		percent := "0%"
		if entry.Total > 0 {
			percent = fmt.Sprintf("%.0f%%", float64(entry.Complete)/float64(entry.Total)*100)
		}
		rows = append(rows, []string{
			entry.Name,
			fmt.Sprintf("%d", entry.Complete),
			fmt.Sprintf("%d", entry.Total),
			percent,
		})
	}
	tableMarkdown := MarkdownTable(
		[]string{"Task Set", "Complete", "Total", "Percent"},
		rows,
		[]Alignment{AlignLeft, AlignRight, AlignRight, AlignRight},
	)

	b := card.NewBuilder().
		Header("Task Set Progress", card.WithColor("blue")).
		Metadata("Overall Status", p.OverallStatus).
		Metadata("Task Sets", len(p.Progress)).
		Divider().
		Markdown(tableMarkdown)
	return mustBuild(b)
}

// ResultCollectionStartParams describes a result collection kickoff.
type ResultCollectionStartParams struct {
	TaskSetNames []string
	Group        string
}

// ResultCollectionStart announces that result collection began.
func ResultCollectionStart(p ResultCollectionStartParams) *card.Card {
	b := card.NewBuilder().
		Header("Result Collection Started", card.WithColor("purple")).
		Metadata("Task Sets", len(p.TaskSetNames)).
		Metadata("Group", p.Group)
	if len(p.TaskSetNames) > 0 {
		lines := make([]string, 0, len(p.TaskSetNames))
		for _, name := range p.TaskSetNames {
			lines = append(lines, "- "+name)
		}
		b.Markdown(strings.Join(lines, "\n"))
	}
	return mustBuild(b)
}

// ResultCollectionCompleteParams describes a finished result collection.
type ResultCollectionCompleteParams struct {
	TaskSetNames []string
	JobTitle     string
	Group        string
	Prefix       string
	Msg          string
}

// ResultCollectionComplete announces that results were collected.
func ResultCollectionComplete(p ResultCollectionCompleteParams) *card.Card {
	b := card.NewBuilder().
		Header("Result Collection Complete", card.WithColor("purple"), card.WithSubtitle(p.JobTitle)).
		Metadata("Task Sets", strings.Join(p.TaskSetNames, ", "))
	if p.Msg != "" {
		b.Markdown(p.Msg)
	}
	locationColumns(b, p.Group, p.Prefix)
	return mustBuild(b)
}

// ComparisonCompleteParams describes a finished comparison run.
type ComparisonCompleteParams struct {
	ComparisonName  string
	TaskSetCount    int
	ResultRows      int
	ResultColumns   int
	ComparisonTable string
}

// ComparisonComplete announces comparison results with the table in an
// expanded collapsible panel.
func ComparisonComplete(p ComparisonCompleteParams) *card.Card {
	b := card.NewBuilder().
		Header("Comparison Complete", card.WithColor("orange"), card.WithSubtitle(p.ComparisonName)).
		Metadata("Comparison", p.ComparisonName).
		Metadata("Task Sets Compared", p.TaskSetCount).
		Metadata("Result Size", fmt.Sprintf("%d rows x %d columns", p.ResultRows, p.ResultColumns))
	if p.ComparisonTable != "" {
		b.Collapsible("Comparison Results", p.ComparisonTable, true)
	}
	return mustBuild(b)
}

// JobCompleteParams describes a finished job.
type JobCompleteParams struct {
	JobTitle string
	Success  bool
	Status   int
	Group    string
	Prefix   string
	Desc     string
	Msg      string
	Duration string
}

// JobComplete announces the final outcome of a job: green when successful,
// red otherwise.
func JobComplete(p JobCompleteParams) *card.Card {
	status := "success"
	if !p.Success {
		status = "failed"
	}
	b := card.NewBuilder().
		Header("Job Complete", card.WithStatus(status), card.WithSubtitle(p.JobTitle)).
		Metadata("Job", p.JobTitle).
		Metadata("Status Code", p.Status)
	if p.Desc != "" {
		b.Metadata("Description", p.Desc)
	}
	if p.Duration != "" {
		b.Metadata("Duration", p.Duration)
	}
	if p.Msg != "" {
		b.Divider().Markdown(p.Msg)
	}
	locationColumns(b, p.Group, p.Prefix)
	return mustBuild(b)
}
