package study

// PathPsalter is the built-in psalm rotation. Its schedule is computed
// entirely from calendar rules and never needs the network; all other study
// paths resolve against the remote provider.
const PathPsalter = "psalter"
