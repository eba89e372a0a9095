package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mvellis/cryptit/pkg/compression"
	"github.com/mvellis/cryptit/pkg/envelope"
	"github.com/mvellis/cryptit/pkg/fragment"
	"github.com/mvellis/cryptit/pkg/sharding"
	"github.com/spf13/cobra"
)

var (
	shareTokens    []string
	outputPath     string
	decompressFlag bool
	overwriteFlag  bool
)

var decryptCmd = &cobra.Command{
	Use:   "decrypt [container] [shareFile...]",
	Short: "Decrypt a container using k or more key shares",
	Long: `Decrypt an encrypted container back into the original file.

The first argument is the .cryptit container, a .cfrag fragment, or a
directory of fragments. Shares are supplied as token files (remaining
arguments) and/or literal tokens via -s.

Example:
  cryptit decrypt taxes.cryptit taxes_share_1_of_3.txt -s "BASE64TOKEN"`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		container, suggestedName, err := loadContainer(args[0])
		if err != nil {
			return err
		}

		tokens := append([]string{}, shareTokens...)
		for _, path := range args[1:] {
			token, err := readTokenFile(path)
			if err != nil {
				return err
			}
			tokens = append(tokens, token)
		}
		if len(tokens) == 0 {
			return fmt.Errorf("no shares supplied: pass share files or -s tokens")
		}

		fmt.Printf("Reconstructing key from %d share(s) and decrypting...\n", len(tokens))

		plaintext, err := envelope.Decrypt(container, tokens)
		if err != nil {
			return fmt.Errorf("decryption failed: %w\n(wrong or too few shares and a corrupted container look identical)", err)
		}

		if decompressFlag {
			plaintext, err = compression.Decompress(plaintext)
			if err != nil {
				return fmt.Errorf("decompression failed: %w", err)
			}
		}

		finalPath := outputPath
		if finalPath == "" {
			finalPath = suggestedName
		}

		if _, err := os.Stat(finalPath); err == nil && !overwriteFlag {
			return fmt.Errorf("%s already exists; use --overwrite to replace it", finalPath)
		}

		if err := os.WriteFile(finalPath, plaintext, 0644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}

		fmt.Printf("Recovered %s\n", finalPath)
		return nil
	},
}

// loadContainer resolves the first argument into raw container bytes plus a
// suggested output filename. A directory or a .cfrag file triggers fragment
// reassembly; anything else is read as a plain container.
func loadContainer(path string) ([]byte, string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read %s: %w", path, err)
	}

	if info.IsDir() {
		return reassembleFromDir(path, "")
	}
	if strings.EqualFold(filepath.Ext(path), FragmentExt) {
		// Sibling fragments of the same run live next to the named one.
		return reassembleFromDir(filepath.Dir(path), path)
	}

	container, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read container: %w", err)
	}

	name := filepath.Base(path)
	stem := strings.TrimSuffix(name, filepath.Ext(name))
	return container, stem + "_decrypted", nil
}

// reassembleFromDir scans dir for fragment files, groups them by encrypt run,
// and reassembles the container. When anchor is non-empty, the group holding
// that file wins; otherwise there must be exactly one group.
func reassembleFromDir(dir, anchor string) ([]byte, string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read directory: %w", err)
	}

	type loadedFragment struct {
		header *fragment.Header
		body   []byte
	}
	groups := make(map[string][]loadedFragment)
	var anchorGroup string

	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), FragmentExt) {
			continue
		}

		path := filepath.Join(dir, e.Name())
		file, err := os.Open(path)
		if err != nil {
			fmt.Printf("Skipping unreadable fragment %s: %v\n", e.Name(), err)
			continue
		}

		reader, err := fragment.NewReader(file)
		if err != nil {
			file.Close()
			fmt.Printf("Skipping invalid fragment %s: %v\n", e.Name(), err)
			continue
		}

		body, err := io.ReadAll(reader.Body)
		file.Close()
		if err != nil {
			fmt.Printf("Skipping fragment %s: %v\n", e.Name(), err)
			continue
		}

		id := reader.Header.GroupID()
		groups[id] = append(groups[id], loadedFragment{header: reader.Header, body: body})
		if anchor != "" && filepath.Clean(path) == filepath.Clean(anchor) {
			anchorGroup = id
		}
	}

	if len(groups) == 0 {
		return nil, "", fmt.Errorf("no valid fragments found in %s", dir)
	}

	var picked []loadedFragment
	switch {
	case anchorGroup != "":
		picked = groups[anchorGroup]
	case len(groups) == 1:
		for _, g := range groups {
			picked = g
		}
	default:
		return nil, "", fmt.Errorf("fragments from %d different encrypt runs found in %s; point at one fragment instead", len(groups), dir)
	}

	ref := picked[0].header
	if len(picked) < ref.Threshold {
		return nil, "", fmt.Errorf("not enough fragments for %s: have %d, need %d", ref.OriginalFilename, len(picked), ref.Threshold)
	}

	fragmenter, err := sharding.NewFragmenter(ref.Total, ref.Threshold)
	if err != nil {
		return nil, "", err
	}

	bodies := make(map[int][]byte, len(picked))
	for _, f := range picked {
		// Fragment headers are 1-based; the erasure coder indexes from 0.
		bodies[f.header.Index-1] = f.body
	}

	container, err := fragmenter.Reassemble(bodies, ref.ContainerSize)
	if err != nil {
		return nil, "", fmt.Errorf("failed to reassemble container: %w", err)
	}

	return container, ref.OriginalFilename, nil
}

// readTokenFile reads a share token written by encrypt (one token per file).
func readTokenFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read share file %s: %w", path, err)
	}
	token := strings.TrimSpace(string(data))
	if token == "" {
		return "", fmt.Errorf("share file %s is empty", path)
	}
	return token, nil
}

func init() {
	rootCmd.AddCommand(decryptCmd)

	decryptCmd.Flags().StringArrayVarP(&shareTokens, "share", "s", nil, "Share token (repeatable)")
	decryptCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Path for the recovered file")
	decryptCmd.Flags().BoolVar(&decompressFlag, "decompress", false, "Gunzip the plaintext after decrypting (for files encrypted with --compress)")
	decryptCmd.Flags().BoolVar(&overwriteFlag, "overwrite", false, "Overwrite the output file if it exists")
}
