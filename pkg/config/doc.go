/*
Package config loads and validates the settings of a fontsync run.

	            +-------------+
	            |   Config    |
	            | (Settings)  |
	            +------+------+
	                   |
	      +-----------+-----------+
	      |           |           |
	+-----+-----+ +---+---+ +-----+-----+
	|   YAML    | |  HCL  | |   JSON    |
	|  Parser   | | Parser| |  Parser   |
	+-----------+ +-------+ +-----------+

🔄 Flow:
1. Start from Default (only the font host is set)
2. Load a config file, chosen by extension through the parser registry
3. Apply command line Overrides
4. Finalize: validate, then make repo and install_root absolute

Values may reference the environment: ${VAR} in YAML and JSON, env.VAR in HCL.

🔍 Example (.fontsync.yaml):

	repo: ${HOME}/fonts
	install_root: /usr/share/lilypond/current/fonts
	fonts:
	  - bravura*
	  - gonville
*/
package config
