package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/chikoo0907/Legal-Aid-sub000/internal/corpus"
	"github.com/chikoo0907/Legal-Aid-sub000/internal/retrieval/chroma"
)

func newIngestCommand() *cobra.Command {
	var collection string

	command := &cobra.Command{
		Use:   "ingest <guides-directory>",
		Short: "Load legal-guide files and upsert them into the vector store",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("loadConfig() > %w", err)
			}

			guides, err := corpus.Load(args[0])
			if err != nil {
				return fmt.Errorf("corpus.Load(%s) > %w", args[0], err)
			}
			if len(guides) == 0 {
				return fmt.Errorf("no guide files found in %s", args[0])
			}

			if collection == "" {
				if len(cfg.Chroma.Collections) == 0 {
					return fmt.Errorf("no target collection: set --collection or configure at least one collection")
				}
				collection = cfg.Chroma.Collections[0]
			}
			client := chroma.NewClient(chroma.Config{
				URL:         cfg.Chroma.URL,
				APIKey:      cfg.Chroma.APIKey,
				Tenant:      cfg.Chroma.Tenant,
				Database:    cfg.Chroma.Database,
				Collections: cfg.Chroma.Collections,
			})

			var total int
			for _, guide := range guides {
				passages := corpus.Passages(guide)
				if len(passages) == 0 {
					continue
				}

				ids := make([]string, 0, len(passages))
				documents := make([]string, 0, len(passages))
				metadatas := make([]map[string]any, 0, len(passages))
				for _, passage := range passages {
					ids = append(ids, passage.ID)
					documents = append(documents, passage.Text)
					metadatas = append(metadatas, passage.Metadata)
				}

				if err := client.Add(cmd.Context(), collection, ids, documents, metadatas); err != nil {
					color.Red("failed: %s (%v)", guide.SituationID, err)
					return fmt.Errorf("client.Add(%s) > %w", guide.SituationID, err)
				}
				color.Green("ingested: %s (%d passages)", guide.SituationID, len(passages))
				total += len(passages)
			}

			fmt.Printf("Upserted %d passages from %d guides into %q\n", total, len(guides), collection)
			return nil
		},
	}

	command.Flags().StringVar(&collection, "collection", "", "Target collection (defaults to the first configured collection)")
	return command
}
