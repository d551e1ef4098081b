package ui

// JSON plumbing shared by the API handlers.

import(
	"encoding/json"
	"net/http"
)

func WriteEncodedData(w http.ResponseWriter, data interface{}) {
	jsonBytes,err := json.MarshalIndent(data, "", " ")
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(jsonBytes)
}

// WriteError keeps error responses in the same shape the frontend already
// parses: {"error": "..."}.
func WriteError(w http.ResponseWriter, code int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}

func HealthHandler(w http.ResponseWriter, r *http.Request) {
	WriteEncodedData(w, map[string]string{"status": "healthy", "service": "formation"})
}
