// cmd/ddlgen/ddlgen.go
package main

import (
	"fmt"
	"os"
	"path/filepath"

	pgrepo "solanaforge/internal/adapters/out/postgres"
)

func mustWrite(path string, content string) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		panic(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		panic(err)
	}
}

// creation history テーブルの DDL を migrations に書き出す。
func main() {
	outDir := filepath.Join("internal", "infra", "database", "migrations")

	outTokenCreations := filepath.Join(outDir, "init_token_creations.sql")

	mustWrite(outTokenCreations, pgrepo.CreationHistoryTableDDL)
	fmt.Println("✅ Generated:", outTokenCreations)
}
