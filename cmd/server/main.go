package main

import (
	"os"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/sfn"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/panjf2000/ants/v2"
	"github.com/rs/zerolog/log"

	"highlight-reel-pipeline/application/services"
	"highlight-reel-pipeline/config"
	"highlight-reel-pipeline/infrastructure/adapters"
	"highlight-reel-pipeline/infrastructure/gin_interface/controllers"
)

func main() {
	_ = godotenv.Load()

	storageConfig, err := config.GetStorageConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get storage config")
	}

	tokenTableConfig, err := config.GetTokenTableConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get token table config")
	}

	assemblerConfig, err := config.GetAssemblerConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get assembler config")
	}

	sess := session.Must(session.NewSessionWithOptions(session.Options{
		SharedConfigState: session.SharedConfigEnable,
		Config:            aws.Config{Region: aws.String(storageConfig.Region)},
	}))

	zeroLogger := adapters.NewZerologWrapper()

	panicHandler := func(err interface{}) {
		log.Error().Interface("panic", err).Msg("worker pool task panicked")
	}
	workerPool, err := ants.NewPool(64, ants.WithPanicHandler(panicHandler))
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create worker pool")
	}
	defer workerPool.Release()

	s3Client := s3.New(sess)
	dynamoClient := dynamodb.New(sess)
	sfnClient := sfn.New(sess)

	objectStore := adapters.NewS3ObjectStore(s3Client, zeroLogger)
	tokenStore := adapters.NewDynamoTokenStore(zeroLogger, dynamoClient, tokenTableConfig)
	workflowCallback := adapters.NewSfnWorkflowCallback(sfnClient, zeroLogger)
	executionHistory := adapters.NewSfnExecutionHistory(sfnClient, zeroLogger)
	processRunner := adapters.NewExecProcessRunner(zeroLogger)
	clipEditor := adapters.NewFFmpegClipEditor(processRunner, zeroLogger, assemblerConfig)

	callbackRouter := services.NewCallbackRouter(tokenStore, objectStore, workflowCallback, zeroLogger)
	pipelineProgress := services.NewPipelineProgress(executionHistory, zeroLogger)
	reelAssembler := services.NewReelAssembler(objectStore, clipEditor, workerPool, zeroLogger, assemblerConfig.ScratchRoot)

	router := gin.Default()
	if err := router.SetTrustedProxies(nil); err != nil {
		log.Fatal().Err(err).Msg("Failed to set trusted proxies!")
	}

	callbackController := controllers.NewCallbackController(zeroLogger, callbackRouter)
	statusController := controllers.NewStatusController(zeroLogger, pipelineProgress)
	assemblyController := controllers.NewAssemblyController(zeroLogger, reelAssembler)

	callbackController.RegisterRoutes(router)
	statusController.RegisterRoutes(router)
	assemblyController.RegisterRoutes(router)

	addr := ":8080"
	if port := os.Getenv("PORT"); port != "" {
		addr = ":" + port
	}
	if err := router.Run(addr); err != nil {
		log.Fatal().Err(err).Msg("Failed to start server!")
	}
}
