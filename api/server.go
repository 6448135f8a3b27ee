package api

import (
	"context"
	"fmt"
	"os"

	"github.com/CarlManson/hottest100/api/controllers"
	"github.com/CarlManson/hottest100/api/transport"
	"github.com/CarlManson/hottest100/live"
	"github.com/CarlManson/hottest100/logging"
	"github.com/CarlManson/hottest100/profile"
	"github.com/CarlManson/hottest100/scheduler"
	"github.com/CarlManson/hottest100/scoring"
	"github.com/CarlManson/hottest100/storage"
	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	ginadapter "github.com/awslabs/aws-lambda-go-api-proxy/gin"
	"github.com/gin-gonic/gin"
)

type Server struct {
	config *Config
}

func NewServer(config *Config) *Server {
	return &Server{
		config: config,
	}
}

func (s *Server) Start() {
	r := transport.NewRouter(gin.DebugMode)

	// Create storage
	cfg, err := awsconfig.LoadDefaultConfig(context.Background())
	if err != nil {
		logging.Log.Errorf("failed to load AWS config: %v", err)
		panic("failed to load AWS config")
	}

	dynamoClient := dynamodb.NewFromConfig(cfg)

	songStorage := &storage.DynamoSongStorage{
		Client:    dynamoClient,
		TableName: s.config.TableNameSongs,
	}
	memberStorage := &storage.DynamoMemberStorage{
		Client:    dynamoClient,
		TableName: s.config.TableNameMembers,
	}
	pickStorage := &storage.DynamoPickStorage{
		Client:    dynamoClient,
		TableName: s.config.TableNamePicks,
	}
	resultStorage := &storage.DynamoResultStorage{
		Client:    dynamoClient,
		TableName: s.config.TableNameResults,
	}
	profileStorage := &storage.DynamoProfileStorage{
		Client:    dynamoClient,
		TableName: s.config.TableNameProfiles,
	}

	loader := controllers.NewSnapshotLoader(songStorage, memberStorage, pickStorage, resultStorage)

	hub := live.NewHub()
	go hub.Run()

	// Profile generation stays off without an API key
	var generator *profile.Generator
	if apiKey := os.Getenv("ANTHROPIC_API_KEY"); apiKey != "" {
		generator = profile.NewGenerator(apiKey, s.config.Model, s.config.MaxTokens)
	} else {
		logging.Log.Warn("PROFILE: ANTHROPIC_API_KEY not set, profile generation disabled")
	}

	awardOptions := awardOptionsFromConfig(s.config.AwardsConfig)

	//Register controllers
	songController := controllers.NewSongController(songStorage)
	songController.RegisterRoutes(r)
	memberController := controllers.NewMemberController(memberStorage, pickStorage, songStorage, hub, loader, s.config.RankZeroScores)
	memberController.RegisterRoutes(r)
	resultController := controllers.NewResultController(resultStorage, songStorage, hub, loader, s.config.RankZeroScores)
	resultController.RegisterRoutes(r)
	leaderboardController := controllers.NewLeaderboardController(loader, hub, awardOptions, s.config.RankZeroScores)
	leaderboardController.RegisterRoutes(r)
	profileController := controllers.NewProfileController(profileStorage, loader, generator)
	profileController.RegisterRoutes(r)

	profileScheduler := scheduler.New(scheduler.Config{
		Enabled:  s.config.SchedulerConfig.Enabled && generator != nil,
		CronSpec: s.config.CronSpec,
	}, func() {
		if _, err := profileController.GenerateAll(context.Background()); err != nil {
			logging.Log.Errorf("SCHEDULER: profile regeneration failed: %v", err)
		}
	})
	if err := profileScheduler.Start(); err != nil {
		logging.Log.Errorf("failed to start scheduler: %v", err)
	}

	//Do not run lambda helper locally
	if os.Getenv("APP_ENV") == "local" {
		startLocal(r, s.config.Port)
	} else {
		startLambda(r)
	}
}

func awardOptionsFromConfig(cfg AwardsConfig) scoring.AwardOptions {
	return scoring.AwardOptions{
		TrueBlue:     tiePolicyFromString(cfg.TrueBlue),
		Diamond:      tiePolicyFromString(cfg.Diamond),
		Sharpshooter: tiePolicyFromString(cfg.Sharpshooter),
		RiskTaker:    tiePolicyFromString(cfg.RiskTaker),
		SoClose:      tiePolicyFromString(cfg.SoClose),
	}
}

func tiePolicyFromString(policy string) scoring.TiePolicy {
	if policy == "all" {
		return scoring.AllTied
	}
	return scoring.FirstOnly
}

// StartLambda sets up for AWS Lambda
func startLambda(engine *gin.Engine) {
	ginLambda := ginadapter.NewV2(engine)

	handler := func(ctx context.Context, req events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
		logging.Log.Infof("Lambda handler triggered on path: %s", req.RawPath)
		return ginLambda.ProxyWithContext(ctx, req)
	}

	logging.Log.Info("Starting lambda")
	lambda.Start(handler)
}

// StartLocal starts a normal HTTP server on the configured port
func startLocal(engine *gin.Engine, port int) {
	logging.Log.Info(fmt.Sprintf("Starting server on http://localhost:%d", port))

	if err := engine.Run(fmt.Sprintf(":%d", port)); err != nil {
		logging.Log.Fatalf("Failed to run server: %v", err)
	}
}
