// Package cli holds the file-system side of the creative-eval command:
// reading profile files and staging creatives given on the command line.
package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"creative-evaluator-backend/internal/models"
	"creative-evaluator-backend/internal/profile"
	"creative-evaluator-backend/internal/staging"

	"gopkg.in/yaml.v3"
)

// ProfileFile is the YAML form of a brand profile. Image entries are file
// paths relative to the profile file.
type ProfileFile struct {
	Logos               []string `yaml:"logos"`
	ToneMode            string   `yaml:"tone_mode"`
	ToneText            string   `yaml:"tone_text"`
	ToneImages          []string `yaml:"tone_images"`
	PreApproved         []string `yaml:"pre_approved"`
	TargetAudience      string   `yaml:"target_audience"`
	OfferingDescription string   `yaml:"offering_description"`
}

// LoadProfile reads a profile file, encodes every referenced image and
// returns the assembled BIP string.
func LoadProfile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read profile: %w", err)
	}

	var pf ProfileFile
	if err := yaml.Unmarshal(data, &pf); err != nil {
		return "", fmt.Errorf("failed to parse profile %s: %w", path, err)
	}

	dir := filepath.Dir(path)
	logos, err := encodePaths(dir, pf.Logos)
	if err != nil {
		return "", err
	}
	toneImages, err := encodePaths(dir, pf.ToneImages)
	if err != nil {
		return "", err
	}
	preApproved, err := encodePaths(dir, pf.PreApproved)
	if err != nil {
		return "", err
	}

	return profile.AssembleProfile(models.BrandProfile{
		LogoFiles:            logos,
		ToneOfVoiceMode:      models.ToneMode(pf.ToneMode),
		ToneOfVoiceText:      pf.ToneText,
		ToneOfVoiceImages:    toneImages,
		PreApprovedCreatives: preApproved,
		TargetAudience:       pf.TargetAudience,
		OfferingDescription:  pf.OfferingDescription,
	})
}

func encodePaths(dir string, paths []string) ([]models.ImageRef, error) {
	refs := make([]models.ImageRef, 0, len(paths))
	for _, p := range paths {
		if !filepath.IsAbs(p) {
			p = filepath.Join(dir, p)
		}
		ref, err := EncodePath(p)
		if err != nil {
			return nil, err
		}
		refs = append(refs, ref)
	}
	return refs, nil
}

// EncodePath reads and encodes one image file.
func EncodePath(path string) (models.ImageRef, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return models.ImageRef{}, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return staging.Encode(filepath.Base(path), data, "")
}

// CreativeArg is one --creative value: path[:platform[:ecommerce]].
type CreativeArg struct {
	Path        string
	Platform    string
	IsEcommerce bool
}

func ParseCreativeArg(arg string) (CreativeArg, error) {
	parts := strings.SplitN(arg, ":", 3)
	c := CreativeArg{Path: parts[0]}
	if c.Path == "" {
		return c, fmt.Errorf("%w: empty creative path in %q", models.ErrValidation, arg)
	}
	if len(parts) > 1 && parts[1] != "" {
		c.Platform = parts[1]
		if !models.IsValidPlatform(c.Platform) {
			return c, fmt.Errorf("%w: unknown platform %q", models.ErrValidation, c.Platform)
		}
	}
	if len(parts) > 2 && parts[2] != "" {
		v, err := strconv.ParseBool(parts[2])
		if err != nil {
			return c, fmt.Errorf("%w: invalid ecommerce flag %q", models.ErrValidation, parts[2])
		}
		c.IsEcommerce = v
	}
	return c, nil
}

// StageCreatives reads every creative argument into a batch in argument
// order.
func StageCreatives(args []string) (*profile.Batch, error) {
	batch := profile.NewBatch()
	for _, arg := range args {
		c, err := ParseCreativeArg(arg)
		if err != nil {
			return nil, err
		}
		ref, err := EncodePath(c.Path)
		if err != nil {
			return nil, err
		}

		id := batch.Add(ref.Name, ref.Data)
		patch := profile.CreativePatch{IsEcommerce: &c.IsEcommerce}
		if c.Platform != "" {
			patch.Platform = &c.Platform
		}
		if err := batch.Update(id, patch); err != nil {
			return nil, err
		}
	}
	return batch, nil
}
