package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/immiform/immiform/internal/config"
	"github.com/immiform/immiform/internal/ocr"
	"github.com/immiform/immiform/internal/pdfform"
	"github.com/immiform/immiform/internal/service"
	"github.com/immiform/immiform/internal/storage"
	localstore "github.com/immiform/immiform/internal/storage/local"
	s3store "github.com/immiform/immiform/internal/storage/s3"
	"github.com/immiform/immiform/internal/translate"
)

var version = "dev" // This will be set by build flags

func main() {
	cfg, err := config.LoadFromFlags()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n\n", err)
		printUsage()
		os.Exit(1)
	}
	if cfg.Version == "" {
		cfg.Version = version
	}

	setupLogging(cfg)

	args := pflag.Args()
	if len(args) < 1 {
		printUsage()
		os.Exit(1)
	}

	command := args[0]
	if command == "help" {
		printUsage()
		return
	}
	if len(args) < 2 {
		fmt.Fprintf(os.Stderr, "Error: %s requires a PDF file path\n\n", command)
		printUsage()
		os.Exit(1)
	}
	filePath := args[1]

	ctx, cancel := signalContext()
	defer cancel()

	svc, err := buildService(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	switch command {
	case "parse":
		err = runParse(ctx, svc, filePath)
	case "translate":
		err = runTranslate(ctx, svc, filePath)
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown command %q\n\n", command)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		if errors.Is(err, pdfform.ErrInputValidation) {
			fmt.Fprintf(os.Stderr, "Invalid input: %v\n", err)
			os.Exit(2)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// setupLogging configures logging verbosity from the configuration
func setupLogging(cfg *config.Config) {
	if cfg.IsDebug() {
		log.SetFlags(log.LstdFlags | log.Lshortfile)
	} else {
		log.SetFlags(log.LstdFlags)
	}
	log.SetOutput(os.Stderr)
}

func signalContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	signalCh := make(chan os.Signal, 1)
	signal.Notify(signalCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-signalCh
		log.Println("Received signal, shutting down...")
		cancel()
	}()
	return ctx, cancel
}

// buildService wires the pipeline collaborators from configuration.
func buildService(cfg *config.Config) (*service.TranslationService, error) {
	var ocrSource pdfform.OCRTextSource
	if cfg.OCREndpoint != "" {
		ocrSource = ocr.NewHTTPClient(cfg.OCREndpoint)
	}
	parser := pdfform.NewParser(ocrSource)

	var translator translate.Translator
	if cfg.TranslatorEndpoint != "" {
		translator = translate.NewLlamaClient(cfg.TranslatorEndpoint, cfg.TranslatorAPIKey, cfg.TranslatorModel)
	} else {
		log.Println("No translator endpoint configured; content passes through untranslated")
		translator = translate.Identity{}
	}

	var store storage.ObjectStorage
	var err error
	switch cfg.StorageBackend {
	case config.StorageS3:
		store, err = s3store.NewS3Client(cfg)
	default:
		store, err = localstore.NewLocalStorage(cfg.OutputDirectory)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s storage: %w", cfg.StorageBackend, err)
	}

	return service.NewTranslationService(
		parser,
		translator,
		pdfform.NewReconstructor(),
		store,
		cfg.SourceLanguage,
		cfg.TargetLanguage,
		cfg.MaxFileSize,
	), nil
}

func runParse(ctx context.Context, svc *service.TranslationService, filePath string) error {
	result, err := svc.ParseDocument(ctx, filePath)
	if err != nil {
		return err
	}
	return printJSON(result)
}

func runTranslate(ctx context.Context, svc *service.TranslationService, filePath string) error {
	record, err := svc.TranslateDocument(ctx, filePath)
	if err != nil {
		return err
	}
	return printJSON(record)
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `immiform - immigration form translation pipeline

Usage:
  immiform [flags] parse <file.pdf>      Extract text, fields, and metadata as JSON
  immiform [flags] translate <file.pdf>  Parse, translate, rebuild, and store the document
  immiform help                          Show this message

Flags are listed with --help. Key settings:
  --outdir             Output directory for local storage
  --translator-endpoint, --translator-apikey, --translator-model
  --source-lang, --target-lang
  --ocr-endpoint       Optional OCR service for image-only documents
  --storage            Storage backend: local or s3

Environment variables use the IMMIFORM_ prefix (e.g. IMMIFORM_OUTDIR).
`)
}
