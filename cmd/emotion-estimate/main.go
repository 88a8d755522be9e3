package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"meigen/internal/app"
	"meigen/internal/chunker"
	"meigen/internal/config"
	"meigen/internal/domain"
	"meigen/internal/logging"
	"meigen/internal/service"
)

func main() {
	_ = godotenv.Load()

	cfgPath := flag.String("config", "config.yaml", "Path to config YAML")
	top := flag.Int("top", 0, "Number of emotions to print per sentence (0 prints all)")
	flag.Parse()
	inputs := flag.Args()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	logger, err := logging.New(cfg.Logging)
	if err != nil {
		log.Fatalf("failed to open log: %v", err)
	}
	defer logger.Close()

	svc, err := app.Build(cfg, logger)
	if err != nil {
		log.Fatalf("startup failed: %v", err)
	}

	var sentences []string
	if len(inputs) == 0 {
		sc := bufio.NewScanner(os.Stdin)
		for sc.Scan() {
			if line := strings.TrimSpace(sc.Text()); line != "" {
				sentences = append(sentences, line)
			}
		}
		if err := sc.Err(); err != nil {
			log.Fatalf("read stdin: %v", err)
		}
	} else {
		ch := chunker.NewSentenceChunker()
		for _, p := range inputs {
			data, err := os.ReadFile(p)
			if err != nil {
				log.Fatalf("read %s: %v", p, err)
			}
			sentences = append(sentences, ch.Chunk(string(data))...)
		}
	}

	failed := 0
	for _, s := range sentences {
		scores, err := svc.Estimate(s)
		if err != nil {
			failed++
			fmt.Printf("%s\t<error: %v>\n", s, err)
			continue
		}
		fmt.Printf("%s\t%s\n", s, format(scores, *top))
	}
	if failed > 0 {
		logger.Warn("%d of %d sentences could not be estimated", failed, len(sentences))
	}
}

func format(scores []domain.EmotionScore, top int) string {
	if top <= 0 {
		top = len(scores)
	}
	return service.FormatScores(scores, top)
}
