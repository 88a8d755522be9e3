package app

import (
	"fmt"

	"meigen/internal/catalog"
	"meigen/internal/config"
	"meigen/internal/domain"
	"meigen/internal/embedding"
	"meigen/internal/embedding/word2vec"
	"meigen/internal/emotion"
	"meigen/internal/logging"
	"meigen/internal/segmenter/kagome"
	"meigen/internal/service"
)

// Build assembles the estimator from config. Every failure here is a
// startup configuration error.
func Build(cfg *config.AppConfig, log *logging.Logger) (*service.EstimatorServiceImpl, error) {
	var emb embedding.Embedder
	switch cfg.Embedding.Type {
	case "word2vec", "":
		var m *word2vec.Model
		var err error
		if cfg.Embedding.Path == "" {
			m, err = word2vec.LoadDefault(cfg.Embedding.Dir)
		} else {
			m, err = word2vec.Load(cfg.Embedding.Path, word2vec.Format(cfg.Embedding.Format))
		}
		if err != nil {
			return nil, fmt.Errorf("load embedding: %w", err)
		}
		log.Info("loaded %d word vectors (dim %d)", m.Len(), m.Dimension())
		emb = m
	default:
		return nil, fmt.Errorf("unknown embedding: %s", cfg.Embedding.Type)
	}
	return BuildWith(cfg, emb, log)
}

// BuildWith assembles the estimator around an already loaded embedding.
func BuildWith(cfg *config.AppConfig, emb embedding.Embedder, log *logging.Logger) (*service.EstimatorServiceImpl, error) {
	var seg domain.Segmenter
	switch cfg.Segmenter.Type {
	case "kagome", "":
		s, err := kagome.NewSegmenter()
		if err != nil {
			return nil, err
		}
		seg = s
	default:
		return nil, fmt.Errorf("unknown segmenter: %s", cfg.Segmenter.Type)
	}

	cat, err := catalog.Load(cfg.Catalog.Path)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	if cfg.Reply.Seed != 0 {
		cat.Seed(cfg.Reply.Seed)
	}

	table, err := emotion.Build(cat.Entries(), emb)
	if err != nil {
		return nil, err
	}
	log.Info("built %d emotion vectors", table.Len())

	return service.NewEstimatorService(seg, emb, table, cat, cfg.Reply.TopK, log), nil
}
