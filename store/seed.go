package store

import (
	"newswire/types"
)

// SeedPublishers maps default masthead names to descriptions, loaded at
// startup so a fresh instance has publishers to subscribe to.
var SeedPublishers = map[string]string{
	"Daily Planet":    "Metropolis and beyond",
	"The Gazette":     "Regional reporting",
	"Tech Chronicle":  "Technology and startups",
	"Morning Courier": "National news desk",
}

// Seed inserts the default publishers. Existing entries with the same
// derived ID are overwritten, which keeps the call idempotent.
func (s *Store) Seed() {
	for name, desc := range SeedPublishers {
		_ = s.SavePublisher(&types.Publisher{
			ID:          types.GenerateID(name),
			Name:        name,
			Description: desc,
		})
	}
}
