package repositories

// Files kept in the document root
const (
	AccessLogFile   = "accessi.log"
	AccessStatsFile = "accessi.json"
	ContactsFile    = "contacts.json"
)
