package cmd

import (
	"context"
	"log"

	"github.com/iamsahilydv/reno-test/config"
	"github.com/iamsahilydv/reno-test/database"
	"github.com/iamsahilydv/reno-test/database/repo/schools"
	"github.com/iamsahilydv/reno-test/internal/school"
	"github.com/iamsahilydv/reno-test/storage"
	"github.com/spf13/cobra"
)

// cleanCmd 清理存储中不被任何记录引用的孤儿图片
var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Delete orphan images from storage",
	Long: `Delete storage files that no school record references.
Orphans are left behind when a best-effort cleanup fails; this command removes them.`,
	Run: func(cmd *cobra.Command, args []string) {
		dryRun, _ := cmd.Flags().GetBool("dry-run")

		if err := runClean(dryRun); err != nil {
			log.Fatalf("Clean failed: %v", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(cleanCmd)
	cleanCmd.Flags().Bool("dry-run", false, "Only show what would be cleaned, don't actually delete")
}

// runClean 执行清理
func runClean(dryRun bool) error {
	config.InitConfig()
	cfg := config.Get()

	dbFactory, err := database.NewFactory(cfg)
	if err != nil {
		return err
	}
	defer dbFactory.Close()

	storageFactory, err := storage.NewFactory(cfg)
	if err != nil {
		return err
	}

	ctx := context.Background()
	repo := schools.NewRepository(dbFactory.GetProvider().DB())
	store := storageFactory.GetDefault()

	if dryRun {
		stored, err := store.List(ctx)
		if err != nil {
			return err
		}
		referenced, err := repo.ListImageIdentifiers(ctx)
		if err != nil {
			return err
		}

		referencedSet := make(map[string]struct{}, len(referenced))
		for _, id := range referenced {
			referencedSet[id] = struct{}{}
		}

		orphans := 0
		for _, identifier := range stored {
			if _, ok := referencedSet[identifier]; !ok {
				log.Printf("[dry-run] would delete orphan asset: %s", identifier)
				orphans++
			}
		}
		log.Printf("[dry-run] %d orphan asset(s) found in storage '%s'", orphans, store.Name())
		return nil
	}

	sweeper := school.NewOrphanSweeper(repo, store)
	removed, err := sweeper.Sweep(ctx)
	if err != nil {
		return err
	}

	log.Printf("Removed %d orphan asset(s) from storage '%s'", removed, store.Name())
	return nil
}
