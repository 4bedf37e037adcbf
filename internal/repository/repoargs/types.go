package repoargs

type RepositoryName string

const (
	MachineRepoName    RepositoryName = "machine"
	JournalRepoName    RepositoryName = "journal"
	StaffBadgeRepoName RepositoryName = "staff_badge"
)

// BatchExecQueryRow вызывается для каждой строки batch запроса.
type BatchExecQueryRow func(i int, err error)
