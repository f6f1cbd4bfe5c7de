package main

import (
	"auth-service/internal/security"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

func keygenCmd() *cobra.Command {
	var (
		outDir string
		bits   int
	)

	cmd := &cobra.Command{
		Use:   "keygen",
		Short: "Generate RSA key pair for access tokens",
		RunE: func(cmd *cobra.Command, args []string) error {
			privatePEM, publicPEM, err := security.GenerateKeyPEM(bits)
			if err != nil {
				return err
			}

			if err := os.MkdirAll(outDir, 0o700); err != nil {
				return fmt.Errorf("create %s: %w", outDir, err)
			}

			privatePath := filepath.Join(outDir, "private.pem")
			if err := os.WriteFile(privatePath, privatePEM, 0o600); err != nil {
				return fmt.Errorf("write private key: %w", err)
			}
			publicPath := filepath.Join(outDir, "public.pem")
			if err := os.WriteFile(publicPath, publicPEM, 0o644); err != nil {
				return fmt.Errorf("write public key: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "keys written to %s and %s\n", privatePath, publicPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outDir, "out", "o", "certs", "Output directory")
	cmd.Flags().IntVar(&bits, "bits", security.MinRSAKeyBits, "RSA key size")

	return cmd
}
