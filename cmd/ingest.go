package cmd

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	migrateService "saebridge/service/migrate"
)

var ingestDir string

var ingestCmd = &cobra.Command{
	Use:   "docs:ingest",
	Short: "Ingest fiscal document XML files from a directory tree",
	Run: func(cmd *cobra.Command, args []string) {
		files, err := collectXMLFiles(ingestDir)
		if err != nil {
			fmt.Printf("Failed to read %s: %v\n", ingestDir, err)
			return
		}
		if len(files) == 0 {
			fmt.Println("No XML files found.")
			return
		}

		run, err := newRun()
		if err != nil {
			fmt.Printf("Setup failed: %v\n", err)
			return
		}
		res, err := migrateService.IngestDocuments(run, files)
		if err != nil {
			fmt.Printf("Ingest failed: %v\n", err)
			return
		}
		printResult(res)
	},
}

func collectXMLFiles(root string) ([]migrateService.DocumentFile, error) {
	var files []migrateService.DocumentFile
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(path), ".xml") {
			return nil
		}
		content, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		files = append(files, migrateService.DocumentFile{
			Name:    d.Name(),
			Path:    path,
			Content: content,
		})
		return nil
	})
	return files, err
}

func init() {
	ingestCmd.Flags().StringVarP(&ingestDir, "dir", "d", "", "Directory to scan recursively (required)")
	ingestCmd.MarkFlagRequired("dir")
	rootCmd.AddCommand(ingestCmd)
}
