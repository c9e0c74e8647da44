package scan

import "github.com/fwojciec/wesber"

// Report summarizes the dependencies of a set of documents.
type Report struct {
	Documents    int
	Dependencies int
	Local        int
	Remote       int
	Inline       int

	// Missing lists each local target that does not exist once, in the
	// order it was first referenced.
	Missing []string

	// Referrers maps each missing target to the documents referencing it.
	Referrers map[string][]string
}

// NewReport builds a Report from extraction results.
func NewReport(docs []*wesber.Result) *Report {
	type referral struct{ target, doc string }
	seen := make(map[string]bool)
	referred := make(map[referral]bool)
	r := &Report{
		Documents: len(docs),
		Missing:   []string{},
		Referrers: make(map[string][]string),
	}
	for _, doc := range docs {
		for _, dep := range doc.Dependencies {
			r.Dependencies++
			switch {
			case dep.EntireURI:
				r.Remote++
				continue
			case dep.Base64:
				r.Inline++
				continue
			}
			r.Local++
			if dep.Exists {
				continue
			}
			if !seen[dep.Path] {
				seen[dep.Path] = true
				r.Missing = append(r.Missing, dep.Path)
			}
			if ref := (referral{dep.Path, doc.File}); !referred[ref] {
				referred[ref] = true
				r.Referrers[dep.Path] = append(r.Referrers[dep.Path], doc.File)
			}
		}
	}
	return r
}
