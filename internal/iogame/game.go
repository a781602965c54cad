// Package iogame implements the transaction coordinator of the
// reward engine. Every submission becomes one store transaction:
// either all its effects commit together or none do. External
// collaborators (classifier, image store) are called before the
// transaction begins; their latency never holds database locks.
package iogame

import (
	"time"

	"github.com/gnames/gnlib/ent/nomcode"
	"github.com/gnames/gnparser"
	"github.com/leafdex/leafdex/internal/iodb"
	"github.com/leafdex/leafdex/pkg/config"
	"github.com/leafdex/leafdex/pkg/db"
	"github.com/leafdex/leafdex/pkg/leafdex"
	"gorm.io/gorm"
)

type game struct {
	cfg   *config.Config
	db    *gorm.DB
	clf   leafdex.Classifier
	store leafdex.ImageStore

	// loc is the calendar that decides streak day boundaries.
	loc *time.Location

	// parsers is a pool of gnparser instances; one parser is not
	// safe for concurrent use.
	parsers chan gnparser.GNparser
}

// New creates the reward engine over a connected database operator.
func New(
	cfg *config.Config,
	op db.Operator,
	clf leafdex.Classifier,
	store leafdex.ImageStore,
) (leafdex.Game, error) {
	gormDB, err := iodb.OpenGorm(op)
	if err != nil {
		return nil, err
	}

	loc, err := time.LoadLocation(cfg.Game.Timezone)
	if err != nil {
		loc = time.UTC
	}

	jobs := cfg.JobsNumber
	if jobs < 1 {
		jobs = 1
	}
	parsers := make(chan gnparser.GNparser, jobs)
	for range jobs {
		pCfg := gnparser.NewConfig(gnparser.OptCode(nomcode.Botanical))
		parsers <- gnparser.New(pCfg)
	}

	return &game{
		cfg:     cfg,
		db:      gormDB,
		clf:     clf,
		store:   store,
		loc:     loc,
		parsers: parsers,
	}, nil
}
