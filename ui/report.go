package ui

import(
	"net/http"

	"github.com/skypies/formation/fstore"
	"github.com/skypies/formation/report"
)

// {{{ ReportHandler

type reportInfoJSON struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// ReportHandler implements GET /report: run a registered report over
// the stored flights matching the report's own date range and tags.
//   ?rep=.list&date=range&range-from=2026/01/01&range-to=2026/01/02
//   &output=csv    (default is JSON)
// With no 'rep' argument, lists the reports available.
func ReportHandler(db fstore.FormationDB, w http.ResponseWriter, r *http.Request) {
	if r.FormValue("rep") == "" {
		list := []reportInfoJSON{}
		for _,entry := range report.ListReports() {
			list = append(list, reportInfoJSON{Name: entry.Name, Description: entry.Description})
		}
		WriteEncodedData(w, list)
		return
	}

	rep,err := report.SetupReport(db.Ctx(), r)
	if err != nil {
		WriteError(w, http.StatusBadRequest, err)
		return
	}

	fq := fstore.QueryForTimeRange(rep.Options.Tags, rep.Options.Start, rep.Options.End)
	iter := db.NewIterator(fq)
	for iter.Iterate(db.Ctx()) {
		if _,err := rep.Process(iter.Flight()); err != nil {
			WriteError(w, http.StatusInternalServerError, err)
			return
		}
	}
	if iter.Err() != nil {
		WriteError(w, http.StatusInternalServerError, iter.Err())
		return
	}

	rep.FinishSummary()

	if r.FormValue("output") == "csv" {
		rep.OutputAsCSV(w)
		return
	}

	metadata := [][]string{}
	for _,row := range rep.MetadataTable() {
		cells := make([]string, 0, len(row))
		for _,cell := range row {
			cells = append(cells, string(cell))
		}
		metadata = append(metadata, cells)
	}

	out := struct {
		Name     string     `json:"name"`
		Metadata [][]string `json:"metadata"`
		Headers  []string   `json:"headers"`
		Rows     [][]string `json:"rows"`
		Log      string     `json:"log,omitempty"`
	}{
		Name:     rep.Name,
		Metadata: metadata,
		Headers:  rep.HeadersText,
		Rows:     rep.RowsText,
		Log:      rep.Log,
	}
	WriteEncodedData(w, out)
}

// }}}

// {{{ -------------------------={ E N D }=----------------------------------

// Local variables:
// folded-file: t
// end:

// }}}
