package bureau

import "context"

// shrubberyPattern is the fixed artifact content planted for every target.
const shrubberyPattern = `       ^
      ^^^
     ^^^^^
    ^^^^^^^
   ^^^^^^^^^
  ^^^^^^^^^^^
 ^^^^^^^^^^^^^
^^^^^^^^^^^^^^^
       |||
       |||

      /\
     /  \
    /____\
   /      \
  /        \
 /__________\
      ||
      ||
`

// ShrubberyCreation persists an ASCII shrubbery through the ArtifactWriter
// collaborator under a key derived from its target.
type ShrubberyCreation struct {
	formCore
	writer ArtifactWriter
}

func NewShrubberyCreation(target string, writer ArtifactWriter) *ShrubberyCreation {
	return &ShrubberyCreation{
		formCore: newFormCore("Shrubbery Creation Form", KindShrubberyCreation, target, 145, 137),
		writer:   writer,
	}
}

// Execute writes the shrubbery artifact keyed "<target>_shrubbery". A writer
// failure is propagated untranslated.
func (f *ShrubberyCreation) Execute(ctx context.Context, a *Actor) (string, error) {
	if err := f.guardExecute(a); err != nil {
		return "", err
	}
	if err := f.writer.Write(ctx, f.target+"_shrubbery", shrubberyPattern); err != nil {
		return "", err
	}
	return "shrubbery has been planted at " + f.target, nil
}
