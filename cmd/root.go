package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "cryptit",
	Short: "Encrypt a file and split the key into k-of-n shares",
	Long: `Cryptit encrypts a file under a random AES-256-GCM key and splits that
key into n shares using Shamir's Secret Sharing. Any k shares recover the key
and decrypt the file; fewer than k reveal nothing about it.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func GetRootCmd() *cobra.Command {
	return rootCmd
}
