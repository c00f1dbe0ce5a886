package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/load"
	"cuelang.org/go/cue/token"

	"github.com/roach88/sigprobe/internal/compiler"
	"github.com/roach88/sigprobe/internal/ir"
)

// LoadError represents an error that occurred during profile loading.
type LoadError struct {
	Code    string
	Message string
	Pos     token.Pos // CUE position if available
}

func (e *LoadError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Line returns the CUE line of the error, or 0 when unknown.
func (e *LoadError) Line() int {
	if e.Pos.IsValid() {
		return e.Pos.Line()
	}
	return 0
}

// Error code constants - unified across all CLI commands.
const (
	ErrCodeGeneric     = "E001" // Generic/unknown error
	ErrCodeScanError   = "E002" // Directory scan error
	ErrCodeNoFiles     = "E003" // No CUE files found
	ErrCodeLoadFailed  = "E004" // CUE load failed
	ErrCodeNotFound    = "E005" // Path not found
	ErrCodeBuildFailed = "E006" // CUE build failed
	ErrCodeWriteFailed = "E007" // File write error
	ErrCodeStore       = "E008" // Snapshot store error
	ErrCodeBadFlag     = "E009" // Invalid flag value
	ErrCodeTestFailed  = "E010" // One or more scenarios failed
)

// LoadProfile reads the top-level profile struct from a CUE file or a
// directory of CUE files and compiles it.
func LoadProfile(path string) (*ir.Profile, error) {
	value, err := loadCUE(path)
	if err != nil {
		return nil, err
	}

	p, err := compiler.CompileProfile(value.LookupPath(cue.ParsePath("profile")))
	if err != nil {
		return nil, convertCompileError(err)
	}
	return p, nil
}

// loadCUE builds the CUE value at path. Directories are loaded as one
// package instance; single files are compiled directly.
func loadCUE(path string) (cue.Value, error) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return cue.Value{}, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("profile not found: %s", path)}
	}
	if err != nil {
		return cue.Value{}, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("error accessing profile: %v", err)}
	}

	ctx := cuecontext.New()

	if !info.IsDir() {
		data, err := os.ReadFile(path)
		if err != nil {
			return cue.Value{}, &LoadError{Code: ErrCodeLoadFailed, Message: fmt.Sprintf("reading profile: %v", err)}
		}
		value := ctx.CompileBytes(data, cue.Filename(path))
		if err := value.Err(); err != nil {
			return cue.Value{}, convertCompileError(err)
		}
		return value, nil
	}

	cueFiles, err := FindCUEFiles(path)
	if err != nil {
		return cue.Value{}, &LoadError{Code: ErrCodeScanError, Message: fmt.Sprintf("error scanning directory: %v", err)}
	}
	if len(cueFiles) == 0 {
		return cue.Value{}, &LoadError{Code: ErrCodeNoFiles, Message: fmt.Sprintf("no CUE files found in %s", path)}
	}

	instances := load.Instances([]string{"."}, &load.Config{Dir: path})
	if len(instances) == 0 {
		return cue.Value{}, &LoadError{Code: ErrCodeLoadFailed, Message: "no CUE instances loaded"}
	}
	inst := instances[0]
	if inst.Err != nil {
		return cue.Value{}, &LoadError{Code: ErrCodeLoadFailed, Message: fmt.Sprintf("loading CUE files: %v", inst.Err)}
	}

	value := ctx.BuildInstance(inst)
	if err := value.Err(); err != nil {
		return cue.Value{}, &LoadError{Code: ErrCodeBuildFailed, Message: fmt.Sprintf("building CUE value: %v", err)}
	}
	return value, nil
}

// FindCUEFiles lists the .cue files directly inside dir. Subdirectories
// are separate CUE packages and are not loaded.
func FindCUEFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, e := range entries {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".cue" {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	return files, nil
}

// convertCompileError converts a compiler error to a LoadError with
// position info. CUE evaluation errors are mapped through the compiler so
// they keep their position.
func convertCompileError(err error) *LoadError {
	var compileErr *compiler.CompileError
	if !errors.As(err, &compileErr) {
		if ce, ok := compiler.FormatCUEError(err).(*compiler.CompileError); ok {
			compileErr = ce
		}
	}
	if compileErr != nil {
		return &LoadError{
			Code:    MapFieldToErrorCode(compileErr.Field),
			Message: compileErr.Message,
			Pos:     compileErr.Pos,
		}
	}
	return &LoadError{Code: ErrCodeGeneric, Message: err.Error()}
}

// MapFieldToErrorCode maps a compiler error field to an error code.
func MapFieldToErrorCode(field string) string {
	switch field {
	case "max_arity":
		return compiler.ErrInvalidArity
	case "tolerance":
		return compiler.ErrInvalidTolerance
	case "owners":
		return compiler.ErrInvalidOwner
	case "deny":
		return compiler.ErrEmptyDeny
	case "source":
		return compiler.ErrEmptySource
	case "cue":
		return ErrCodeBuildFailed
	default:
		return ErrCodeGeneric
	}
}
