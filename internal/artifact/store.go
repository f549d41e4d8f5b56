package artifact

import "path/filepath"

// Store resolves the fixed locations of everything the training pipeline
// writes and the prediction pipeline reads.
type Store struct {
	Dir              string
	PreprocessorFile string
	ModelFile        string
}

func NewStore(dir, preprocessorFile, modelFile string) *Store {
	return &Store{
		Dir:              dir,
		PreprocessorFile: preprocessorFile,
		ModelFile:        modelFile,
	}
}

func (s *Store) PreprocessorPath() string {
	return s.Path(s.PreprocessorFile)
}

func (s *Store) ModelPath() string {
	return s.Path(s.ModelFile)
}

// Path joins name onto the artifact directory.
func (s *Store) Path(name string) string {
	return filepath.Join(s.Dir, name)
}
