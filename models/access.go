package models

// Transport labels as written to the access log and aggregate
const (
	ProtocolHTTP  = "HTTP"
	ProtocolHTTPS = "HTTPS"
)

// AccessRecord represents a single observed request
type AccessRecord struct {
	Timestamp string `json:"timestamp"`
	Protocol  string `json:"protocol"`
	Method    string `json:"method"`
	URL       string `json:"url"`
}

// IPAggregate holds every request seen from one client IP
type IPAggregate struct {
	Count      int            `json:"count"`
	LastAccess *string        `json:"lastAccess"`
	Logs       []AccessRecord `json:"logs"`
}

// Record appends a request to the aggregate and bumps the counters
func (a *IPAggregate) Record(rec AccessRecord) {
	a.Logs = append(a.Logs, rec)
	a.Count = len(a.Logs)
	ts := rec.Timestamp
	a.LastAccess = &ts
}

// LogLine renders the accessi.log line for the record, including the newline
func (r AccessRecord) LogLine(ip string) string {
	return r.Timestamp + " - " + ip + " - " + r.Protocol + " " + r.Method + " " + r.URL + "\n"
}
