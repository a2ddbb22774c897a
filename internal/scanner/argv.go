package scanner

// Backend invocations differ in dialect but must agree on semantics: follow
// symlinks, regular files only, match every extension variant, no output
// decoration. fd and rg additionally need --hidden and --no-ignore so they
// report the same set find does on trees with dotfiles or ignore rules.

// argvFor builds the argument vector for tool enumerating root. The result
// is handed to the runner as a structured vector, never as a shell string.
func argvFor(tool Tool, root string, exts []string) []string {
	switch tool {
	case ToolFD, ToolFDFind:
		return fdArgs(root, exts)
	case ToolRG:
		return rgArgs(root, exts)
	default:
		return findArgs(root, exts)
	}
}

// findArgs builds argv for find: -L follows symlinks, -type f keeps regular
// files, and the parenthesized -o chain ORs the name patterns.
func findArgs(root string, exts []string) []string {
	suffixes := variantSuffixes(exts)

	args := []string{"-L", root, "-type", "f", "("}
	for i, suffix := range suffixes {
		if i > 0 {
			args = append(args, "-o")
		}
		args = append(args, "-name", "*"+suffix)
	}
	return append(args, ")")
}

// fdArgs builds argv for fd. The "." pattern matches everything; the -e
// flags restrict by extension, where fd treats a multi-dot value such as
// org.gpg as a full suffix.
func fdArgs(root string, exts []string) []string {
	args := []string{
		"--follow",
		"--hidden",
		"--no-ignore",
		"--color", "never",
		"--type", "file",
		"--absolute-path",
	}
	for _, ext := range variantExtensions(exts) {
		args = append(args, "-e", ext)
	}
	return append(args, "--", ".", root)
}

// rgArgs builds argv for ripgrep in file-listing mode. Multiple -g globs OR
// together.
func rgArgs(root string, exts []string) []string {
	args := []string{
		"--files",
		"--follow",
		"--hidden",
		"--no-ignore",
		"--color", "never",
	}
	for _, suffix := range variantSuffixes(exts) {
		args = append(args, "-g", "*"+suffix)
	}
	return append(args, root)
}
