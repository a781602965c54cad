package config

// Update applies a slice of Option functions to the Config.
// This is the only way to modify a Config after creation.
// Invalid options are rejected with warnings - the config remains in
// a valid state.
func (c *Config) Update(opts []Option) {
	for _, opt := range opts {
		opt(c)
	}
}

// ToOptions converts the Config to a slice of Option functions.
// Only includes persistent fields appropriate for config.yaml;
// HomeDir is runtime-only. Used for round-tripping
// config.yaml <-> Config conversions.
func (c *Config) ToOptions() []Option {
	var res []Option

	if s := c.Database.Host; s != "" {
		res = append(res, OptDatabaseHost(s))
	}
	if i := c.Database.Port; i > 0 {
		res = append(res, OptDatabasePort(i))
	}
	if s := c.Database.User; s != "" {
		res = append(res, OptDatabaseUser(s))
	}
	if s := c.Database.Password; s != "" {
		res = append(res, OptDatabasePassword(s))
	}
	if s := c.Database.Database; s != "" {
		res = append(res, OptDatabaseDatabase(s))
	}
	if s := c.Database.SSLMode; s != "" {
		res = append(res, OptDatabaseSSLMode(s))
	}
	if i := c.Database.BatchSize; i > 0 {
		res = append(res, OptDatabaseBatchSize(i))
	}

	if s := c.Classifier.URL; s != "" {
		res = append(res, OptClassifierURL(s))
	}
	if s := c.Classifier.APIKey; s != "" {
		res = append(res, OptClassifierAPIKey(s))
	}
	if s := c.Classifier.Model; s != "" {
		res = append(res, OptClassifierModel(s))
	}
	if f := c.Classifier.MinConfidence; f > 0 {
		res = append(res, OptClassifierMinConfidence(f))
	}
	if i := c.Classifier.TimeoutSec; i > 0 {
		res = append(res, OptClassifierTimeoutSec(i))
	}

	if s := c.Storage.URL; s != "" {
		res = append(res, OptStorageURL(s))
	}
	if s := c.Storage.PrivateKey; s != "" {
		res = append(res, OptStoragePrivateKey(s))
	}
	if s := c.Storage.Folder; s != "" {
		res = append(res, OptStorageFolder(s))
	}
	if i := c.Storage.TimeoutSec; i > 0 {
		res = append(res, OptStorageTimeoutSec(i))
	}

	if s := c.Auth.URL; s != "" {
		res = append(res, OptAuthURL(s))
	}
	if i := c.Auth.TimeoutSec; i > 0 {
		res = append(res, OptAuthTimeoutSec(i))
	}

	if f := c.Game.GeofenceTolerance; f > 0 {
		res = append(res, OptGameGeofenceTolerance(f))
	}
	if s := c.Game.Timezone; s != "" {
		res = append(res, OptGameTimezone(s))
	}
	if i := c.Game.TxTimeoutSec; i > 0 {
		res = append(res, OptGameTxTimeoutSec(i))
	}
	if f := c.Game.ScreenThreshold; f > 0 {
		res = append(res, OptGameScreenThreshold(f))
	}

	if i := c.Server.Port; i > 0 {
		res = append(res, OptServerPort(i))
	}

	if s := c.Log.Level; s != "" {
		res = append(res, OptLogLevel(s))
	}
	if s := c.Log.Format; s != "" {
		res = append(res, OptLogFormat(s))
	}
	if s := c.Log.Destination; s != "" {
		res = append(res, OptLogDestination(s))
	}

	if i := c.JobsNumber; i > 0 {
		res = append(res, OptJobsNumber(i))
	}

	return res
}
