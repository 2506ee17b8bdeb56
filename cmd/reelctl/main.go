package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/sfn"
	"github.com/joho/godotenv"
	"github.com/panjf2000/ants/v2"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"highlight-reel-pipeline/application/services"
	"highlight-reel-pipeline/config"
	"highlight-reel-pipeline/infrastructure/adapters"
	"highlight-reel-pipeline/infrastructure/gin_interface/dto"
)

func main() {
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:           "reelctl",
		Short:         "Operate the highlight reel pipeline from the command line",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.AddCommand(newStatusCommand())
	rootCmd.AddCommand(newAssembleCommand())

	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}

func newStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status <execution-arn>",
		Short: "Reconstruct and print the progress of one pipeline execution",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := newSession()
			if err != nil {
				return err
			}
			logger := adapters.NewZerologWrapper()
			history := adapters.NewSfnExecutionHistory(sfn.New(sess), logger)
			progress := services.NewPipelineProgress(history, logger)

			status, err := progress.Snapshot(context.Background(), args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd, dto.NewPipelineStatusResponse(status))
		},
	}
}

func newAssembleCommand() *cobra.Command {
	var jobFile string

	cmd := &cobra.Command{
		Use:   "assemble",
		Short: "Run one assembly job described by a JSON file",
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := os.ReadFile(jobFile)
			if err != nil {
				return fmt.Errorf("reading job file: %w", err)
			}
			var request dto.AssemblyRequest
			if err := json.Unmarshal(raw, &request); err != nil {
				return fmt.Errorf("parsing job file: %w", err)
			}

			sess, err := newSession()
			if err != nil {
				return err
			}
			assemblerConfig, err := config.GetAssemblerConfig()
			if err != nil {
				return err
			}

			logger := adapters.NewZerologWrapper()
			workerPool, err := ants.NewPool(16)
			if err != nil {
				return err
			}
			defer workerPool.Release()

			objectStore := adapters.NewS3ObjectStore(s3.New(sess), logger)
			processRunner := adapters.NewExecProcessRunner(logger)
			clipEditor := adapters.NewFFmpegClipEditor(processRunner, logger, assemblerConfig)
			assembler := services.NewReelAssembler(objectStore, clipEditor, workerPool, logger,
				assemblerConfig.ScratchRoot)

			result, err := assembler.Assemble(context.Background(), request.ToJob())
			if err != nil {
				return err
			}
			return printJSON(cmd, dto.AssemblyResponse{
				FinalVideoURI: result.FinalLocation,
				TotalDuration: result.TotalDurationSeconds,
				SegmentCount:  result.SegmentCount,
			})
		},
	}

	cmd.Flags().StringVar(&jobFile, "job", "", "path to the assembly job JSON file")
	_ = cmd.MarkFlagRequired("job")

	return cmd
}

func newSession() (*session.Session, error) {
	options := session.Options{SharedConfigState: session.SharedConfigEnable}
	if region := os.Getenv("REGION"); region != "" {
		options.Config = aws.Config{Region: aws.String(region)}
	}
	return session.NewSessionWithOptions(options)
}

func printJSON(cmd *cobra.Command, payload interface{}) error {
	encoded, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return err
	}
	cmd.Println(string(encoded))
	return nil
}
