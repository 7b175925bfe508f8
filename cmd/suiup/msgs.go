package main

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort      = "Install and manage Sui ecosystem CLI tools"
	MsgInstallShort   = "Install a tool release or nightly build"
	MsgUpdateShort    = "Update a tool to the latest release on its channel"
	MsgRemoveShort    = "Remove a tool and all its installed versions"
	MsgListShort      = "List the tools suiup can manage"
	MsgShowShort      = "Show installed versions and which are the defaults"
	MsgDefaultShort   = "Get or set the default version of a tool"
	MsgWhichShort     = "Print the path of a tool's default binary"
	MsgCleanupShort   = "Remove cached downloads and unreferenced store entries"
	MsgGenConfigShort = "Write the resolved configuration to suiup.toml"
	MsgVersionShort   = "Print version information"

	// Flag descriptions
	MsgFlagVerbose     = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagFormat      = "Output format: auto, term, text or json"
	MsgFlagGitHubToken = "GitHub API token (defaults to config or GITHUB_TOKEN)"
	MsgFlagNightly     = "Build from source at a branch head (default branch: main)"
	MsgFlagDebug       = "Use the debug-symbols build (sui only)"
	MsgFlagYes         = "Assume yes for prompts"
	MsgFlagCleanAll    = "Remove every cached archive regardless of age"
	MsgFlagListRemote  = "Also query the latest published version of each tool"
	MsgFlagDryRun      = "Report what would be removed without removing it"

	// Status messages
	MsgAlreadyInstalled = "%s is already installed\n"
	MsgInstalled        = "Installed %s\n"
	MsgDefaultSet       = "Default %s is now %s\n"
	MsgUpToDate         = "%s is up to date (%s)\n"
	MsgRemoved          = "Removed %d installed version(s) of %s\n"
	MsgNothingToRemove  = "No installed versions of %s\n"
	MsgNoDefaults       = "No defaults set. Run \"suiup default set <tool>\" after installing.\n"
	MsgNothingInstalled = "Nothing installed yet. Try \"suiup install sui\".\n"
)

const MsgRootLong = `suiup installs and manages the Sui ecosystem command line tools
(sui, mvr, walrus, site-builder).

Versions are kept side by side in a local store; the default version of
each tool is exposed on your PATH and can be switched at any time
without reinstalling.`

const MsgInstallLong = `Install a tool. The argument takes an optional version specifier:

  suiup install sui                latest release on the default network
  suiup install sui@testnet        latest testnet release
  suiup install sui@testnet-1.40.1 exact network and version
  suiup install sui@1.40.1         exact version, any network (must be unique)
  suiup install sui --nightly      build the main branch from source
  suiup install sui --debug        install the debug-symbols build

"==" and "=" are accepted in place of "@".`
