package api

import (
	"sync"

	"github.com/CarlManson/hottest100/logging"
	"github.com/spf13/viper"
)

type Config struct {
	StorageConfig
	ServerConfig
	LeaderboardConfig
	AwardsConfig
	ProfileConfig
	SchedulerConfig
}

type StorageConfig struct {
	TableNameSongs    string
	TableNameMembers  string
	TableNamePicks    string
	TableNameResults  string
	TableNameProfiles string
}

type ServerConfig struct {
	Port int
}

type LeaderboardConfig struct {
	// RankZeroScores controls whether members on zero points get a ladder
	// position or show as unranked.
	RankZeroScores bool
}

type AwardsConfig struct {
	// Policies are "first" or "all". TiePolicy is the default; the
	// per-category fields override it individually.
	TiePolicy    string
	TrueBlue     string
	Diamond      string
	Sharpshooter string
	RiskTaker    string
	SoClose      string
}

type ProfileConfig struct {
	Model     string
	MaxTokens int
}

type SchedulerConfig struct {
	Enabled  bool
	CronSpec string
}

var settingsOnce sync.Once

func ReadConfig() *Config {

	var conf = &Config{
		StorageConfig: StorageConfig{
			TableNameSongs:    viper.GetString("storage.TableNameSongs"),
			TableNameMembers:  viper.GetString("storage.TableNameMembers"),
			TableNamePicks:    viper.GetString("storage.TableNamePicks"),
			TableNameResults:  viper.GetString("storage.TableNameResults"),
			TableNameProfiles: viper.GetString("storage.TableNameProfiles"),
		},
		ServerConfig: ServerConfig{
			Port: viper.GetInt("server.port"),
		},
		LeaderboardConfig: LeaderboardConfig{
			RankZeroScores: getBoolOrDefault("leaderboard.rankZeroScores", false),
		},
		AwardsConfig: readAwardsConfig(),
		ProfileConfig: ProfileConfig{
			Model:     getStringOrDefault("profiles.model", "claude-3-5-sonnet-20241022"),
			MaxTokens: getIntOrDefault("profiles.maxTokens", 500),
		},
		SchedulerConfig: SchedulerConfig{
			Enabled:  getBoolOrDefault("scheduler.enabled", false),
			CronSpec: getStringOrDefault("scheduler.cron", "*/30 * * * *"),
		},
	}

	settingsOnce.Do(func() {
		logging.Log.Print("Reading settings!")
	})

	return conf
}

func readAwardsConfig() AwardsConfig {
	def := getStringOrDefault("awards.tiePolicy", "first")
	return AwardsConfig{
		TiePolicy:    def,
		TrueBlue:     getStringOrDefault("awards.tiePolicies.trueBlue", def),
		Diamond:      getStringOrDefault("awards.tiePolicies.diamond", def),
		Sharpshooter: getStringOrDefault("awards.tiePolicies.sharpshooter", def),
		RiskTaker:    getStringOrDefault("awards.tiePolicies.riskTaker", def),
		SoClose:      getStringOrDefault("awards.tiePolicies.soClose", def),
	}
}

func getIntOrDefault(name string, def int) int {
	if viper.IsSet(name) {
		v := viper.GetInt(name)
		logging.Log.Printf("found '%s' in viper", name)
		return v
	}
	logging.Log.Printf("could not find '%s' in viper! Returning default", name)
	return def
}

func getBoolOrDefault(name string, def bool) bool {
	if viper.IsSet(name) {
		v := viper.GetBool(name)
		logging.Log.Printf("found '%s' in viper", name)
		return v
	}
	logging.Log.Printf("could not find '%s' in viper! Returning default", name)
	return def
}

func getStringOrDefault(name string, def string) string {
	if viper.IsSet(name) {
		v := viper.GetString(name)
		logging.Log.Printf("found '%s' in viper", name)
		return v
	}
	logging.Log.Printf("could not find '%s' in viper! Returning default", name)
	return def
}
