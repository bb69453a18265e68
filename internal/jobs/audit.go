package jobs

import (
	"context"
	"time"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/emrgen/bioref/internal/store"
	"github.com/sirupsen/logrus"
)

// AuditReport lists the rows that break integrity rules the schema cannot
// express as constraints.
type AuditReport struct {
	// genes flagged with more than one canonical isoform
	MultipleCanonical []*store.IsoformCount
	// genes with proteins but no canonical isoform
	NoCanonical []*store.IsoformCount
	// annotation edges whose term category no longer matches the slot
	Misplaced []*store.MisplacedAnnotation
}

func (r *AuditReport) Clean() bool {
	return len(r.MultipleCanonical) == 0 && len(r.NoCanonical) == 0 && len(r.Misplaced) == 0
}

// IntegrityAudit scans the store for canonical isoform and annotation
// category problems and logs what it finds.
type IntegrityAudit struct {
	store    store.Store
	schedule string
	timeout  time.Duration
}

func NewIntegrityAudit(schedule string, store store.Store) *IntegrityAudit {
	return &IntegrityAudit{
		store:    store,
		schedule: schedule,
		timeout:  5 * time.Minute,
	}
}

func (a *IntegrityAudit) Name() string {
	return "integrity_audit"
}

func (a *IntegrityAudit) Schedule() string {
	return a.schedule
}

func (a *IntegrityAudit) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), a.timeout)
	defer cancel()

	report, err := a.Audit(ctx)
	if err != nil {
		logrus.Errorf("integrity audit failed: %v", err)
		return
	}

	for _, c := range report.MultipleCanonical {
		logrus.Warnf("gene %s has %d canonical isoforms", c.GeneID, c.Canonical)
	}
	for _, c := range report.NoCanonical {
		logrus.Warnf("gene %s has %d proteins and no canonical isoform", c.GeneID, c.Proteins)
	}

	tables := mapset.NewThreadUnsafeSet[string]()
	for _, m := range report.Misplaced {
		logrus.Warnf("annotation %s entity %s term %s does not match its slot", m.Table, m.EntityID, m.TermID)
		tables.Add(m.Table)
	}

	if report.Clean() {
		logrus.Infof("integrity audit: no problems found")
		return
	}
	logrus.Warnf("integrity audit: %d genes with several canonical isoforms, %d without one, %d misplaced annotations in %v",
		len(report.MultipleCanonical), len(report.NoCanonical), len(report.Misplaced), tables.ToSlice())
}

// Audit collects the report without logging it.
func (a *IntegrityAudit) Audit(ctx context.Context) (*AuditReport, error) {
	counts, err := a.store.ListIsoformCounts(ctx)
	if err != nil {
		return nil, err
	}

	report := &AuditReport{}
	for _, c := range counts {
		switch {
		case c.Canonical > 1:
			report.MultipleCanonical = append(report.MultipleCanonical, c)
		case c.Proteins > 0 && c.Canonical == 0:
			report.NoCanonical = append(report.NoCanonical, c)
		}
	}

	report.Misplaced, err = a.store.ListMisplacedAnnotations(ctx)
	if err != nil {
		return nil, err
	}

	return report, nil
}
