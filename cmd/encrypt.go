package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mvellis/cryptit/pkg/compression"
	"github.com/mvellis/cryptit/pkg/envelope"
	"github.com/mvellis/cryptit/pkg/fragment"
	"github.com/mvellis/cryptit/pkg/sharding"
	"github.com/mvellis/cryptit/pkg/sheet"
	"github.com/spf13/cobra"
)

// ContainerExt is the extension of the sealed container file.
const ContainerExt = ".cryptit"

// FragmentExt is the extension of erasure-coded container fragments.
const FragmentExt = ".cfrag"

var (
	threshold    int
	totalShares  int
	destDir      string
	compressFlag bool
	fragmentFlag bool
	qrFlag       bool
	pdfFlag      bool
)

var encryptCmd = &cobra.Command{
	Use:   "encrypt [file]",
	Short: "Encrypt a file and emit k-of-n key shares",
	Long: `Encrypt a file under a fresh random key and split the key into n share
tokens, any k of which decrypt it.

Example:
  cryptit encrypt taxes.pdf -k 2 -n 3

  This writes taxes.cryptit plus 3 share token files. Any 2 tokens, together
  with the .cryptit file, recover taxes.pdf.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		filePath := args[0]

		if threshold < 1 {
			return fmt.Errorf("threshold (-k) must be at least 1")
		}
		if totalShares < threshold {
			return fmt.Errorf("shares (-n) cannot be less than the threshold")
		}
		if totalShares > 255 {
			return fmt.Errorf("shares (-n) cannot exceed 255")
		}

		if destDir == "" {
			destDir = filepath.Dir(filePath)
		}
		if err := os.MkdirAll(destDir, 0755); err != nil {
			return fmt.Errorf("failed to create destination directory: %w", err)
		}

		plaintext, err := os.ReadFile(filePath)
		if err != nil {
			return fmt.Errorf("failed to read file: %w", err)
		}

		if compressFlag {
			plaintext, err = compression.Compress(plaintext)
			if err != nil {
				return fmt.Errorf("compression failed: %w", err)
			}
		}

		fmt.Printf("Encrypting %s with %d-of-%d key sharing...\n", filepath.Base(filePath), threshold, totalShares)

		container, tokens, err := envelope.Encrypt(plaintext, threshold, totalShares)
		if err != nil {
			return fmt.Errorf("encryption failed: %w", err)
		}

		originalName := filepath.Base(filePath)
		stem := strings.TrimSuffix(originalName, filepath.Ext(originalName))

		if fragmentFlag {
			if err := writeFragments(container, originalName, stem); err != nil {
				return err
			}
		} else {
			outPath := filepath.Join(destDir, stem+ContainerExt)
			if err := os.WriteFile(outPath, container, 0644); err != nil {
				return fmt.Errorf("failed to write container: %w", err)
			}
			fmt.Printf("Created %s\n", filepath.Base(outPath))
		}

		created := time.Now()
		for i, token := range tokens {
			index := i + 1
			shareStem := fmt.Sprintf("%s_share_%d_of_%d", stem, index, totalShares)

			sharePath := filepath.Join(destDir, shareStem+".txt")
			if err := os.WriteFile(sharePath, []byte(token+"\n"), 0600); err != nil {
				return fmt.Errorf("failed to write share %d: %w", index, err)
			}
			fmt.Printf("Share %d/%d: %s\n", index, totalShares, token)

			if qrFlag {
				if err := sheet.WriteQR(token, filepath.Join(destDir, shareStem+".png")); err != nil {
					return fmt.Errorf("failed to write share QR %d: %w", index, err)
				}
			}
			if pdfFlag {
				card := sheet.Card{
					SourceFile: originalName,
					Index:      index,
					Total:      totalShares,
					Threshold:  threshold,
					Token:      token,
					Created:    created,
				}
				if err := sheet.WritePDF(card, filepath.Join(destDir, shareStem+".pdf")); err != nil {
					return fmt.Errorf("failed to write share card %d: %w", index, err)
				}
			}
		}

		fmt.Println("Done. Distribute the shares separately from the encrypted file.")
		return nil
	},
}

// writeFragments erasure-codes the container into totalShares fragment files.
func writeFragments(container []byte, originalName, stem string) error {
	fragmenter, err := sharding.NewFragmenter(totalShares, threshold)
	if err != nil {
		return fmt.Errorf("failed to initialize fragmenter: %w", err)
	}

	frags, err := fragmenter.Fragment(container)
	if err != nil {
		return fmt.Errorf("fragmenting failed: %w", err)
	}

	timestamp := time.Now().Unix()
	for i, body := range frags {
		index := i + 1
		outName := fmt.Sprintf("%s_%d_of_%d%s", stem, index, totalShares, FragmentExt)
		outPath := filepath.Join(destDir, outName)

		outFile, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("failed to create fragment %d: %w", index, err)
		}

		header := &fragment.Header{
			OriginalFilename: originalName,
			Timestamp:        timestamp,
			Index:            index,
			Total:            totalShares,
			Threshold:        threshold,
			ContainerSize:    len(container),
		}

		writeErr := fragment.NewWriter(outFile).Write(header, body)
		closeErr := outFile.Close()
		if writeErr != nil {
			return fmt.Errorf("failed to write fragment %d: %w", index, writeErr)
		}
		if closeErr != nil {
			return fmt.Errorf("failed to close fragment %d: %w", index, closeErr)
		}

		fmt.Printf("Created %s\n", outName)
	}

	return nil
}

func init() {
	rootCmd.AddCommand(encryptCmd)

	encryptCmd.Flags().IntVarP(&threshold, "threshold", "k", 0, "Number of shares required to decrypt")
	encryptCmd.Flags().IntVarP(&totalShares, "shares", "n", 0, "Total number of key shares to create")
	encryptCmd.Flags().StringVarP(&destDir, "destination", "d", "", "Directory for outputs (default: the input file's directory)")
	encryptCmd.Flags().BoolVar(&compressFlag, "compress", false, "Gzip the plaintext before encrypting (pass --decompress when decrypting)")
	encryptCmd.Flags().BoolVar(&fragmentFlag, "fragments", false, "Also erasure-code the encrypted container into n fragment files, any k of which reassemble it")
	encryptCmd.Flags().BoolVar(&qrFlag, "qr", false, "Write each share token as a PNG QR code")
	encryptCmd.Flags().BoolVar(&pdfFlag, "pdf", false, "Write a printable PDF card per share")

	encryptCmd.MarkFlagRequired("threshold")
	encryptCmd.MarkFlagRequired("shares")
}
