package serialize

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/giuseppecurci/HPC---Parallel-Random-Forest/internal/forest"
	"github.com/giuseppecurci/HPC---Parallel-Random-Forest/internal/tree"
)

const manifestName = "forest_config"

// WriteForest writes a forest directory at dir: the forest_config manifest
// plus one random_tree_<i>.bin per tree, per spec.md §4.8. Per spec.md §5's
// "the only writer to output files is rank 0", callers must only invoke
// this from the coordinator process.
func WriteForest(dir string, cfg *forest.Config, trees []*tree.Node) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("serialize: creating forest dir %s: %w", dir, err)
	}

	if err := writeManifest(dir, cfg, len(trees)); err != nil {
		return err
	}

	for i, t := range trees {
		path := filepath.Join(dir, treeFileName(i))
		if err := writeTreeFile(path, t); err != nil {
			return err
		}
	}

	return nil
}

func writeManifest(dir string, cfg *forest.Config, numTrees int) error {
	path := filepath.Join(dir, manifestName)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("serialize: creating manifest %s: %w", path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	fmt.Fprintf(w, "num_trees: %d\n", numTrees)
	fmt.Fprintf(w, "max_depth: %d\n", cfg.MaxDepth)
	fmt.Fprintf(w, "min_samples_split: %d\n", cfg.MinSamplesSplit)
	fmt.Fprintf(w, "max_features: %s\n", formatMaxFeatures(cfg.MaxFeatures))

	return w.Flush()
}

func formatMaxFeatures(m tree.MaxFeatures) string {
	switch m.Kind {
	case tree.MaxFeaturesSqrt:
		return "sqrt"
	case tree.MaxFeaturesLog2:
		return "log2"
	default:
		return strconv.Itoa(m.Fixed)
	}
}

func writeTreeFile(path string, t *tree.Node) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("serialize: creating %s: %w", path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	if err := WriteTree(w, t); err != nil {
		return err
	}
	return w.Flush()
}

func treeFileName(i int) string {
	return fmt.Sprintf("random_tree_%d.bin", i)
}

// Manifest is the parsed form of the forest_config manifest.
type Manifest struct {
	NumTrees        int
	MaxDepth        int
	MinSamplesSplit int
	MaxFeatures     string
}

// ReadManifest parses the forest_config file in dir.
func ReadManifest(dir string) (*Manifest, error) {
	path := filepath.Join(dir, manifestName)
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("serialize: opening manifest %s: %w", path, err)
	}
	defer f.Close()

	m := &Manifest{}
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		key, val, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		val = strings.TrimSpace(val)

		switch key {
		case "num_trees":
			m.NumTrees, err = strconv.Atoi(val)
		case "max_depth":
			m.MaxDepth, err = strconv.Atoi(val)
		case "min_samples_split":
			m.MinSamplesSplit, err = strconv.Atoi(val)
		case "max_features":
			m.MaxFeatures = val
		}
		if err != nil {
			return nil, fmt.Errorf("serialize: parsing manifest field %q: %w", key, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("serialize: reading manifest: %w", err)
	}

	return m, nil
}

// ReadForest reads every random_tree_<i>.bin named by the forest_config
// manifest in dir, in order.
func ReadForest(dir string) (*Manifest, []*tree.Node, error) {
	m, err := ReadManifest(dir)
	if err != nil {
		return nil, nil, err
	}

	trees := make([]*tree.Node, m.NumTrees)
	for i := range trees {
		path := filepath.Join(dir, treeFileName(i))
		t, err := readTreeFile(path)
		if err != nil {
			return nil, nil, err
		}
		trees[i] = t
	}

	return m, trees, nil
}

func readTreeFile(path string) (*tree.Node, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("serialize: opening %s: %w", path, err)
	}
	defer f.Close()

	return ReadTree(bufio.NewReader(f))
}
