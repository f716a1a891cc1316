package repositories

// Repositories struct holds all repository interfaces
type Repositories struct {
	Access  AccessRepository
	Contact ContactRepository
}

// NewRepositories creates and initializes all repositories rooted at dir
func NewRepositories(dir string) *Repositories {
	return &Repositories{
		Access:  NewAccessRepository(dir),
		Contact: NewContactRepository(dir),
	}
}
