package segment

// Fixed record sizes and offsets in the container file. All values are byte
// counts; offsets named *Start are relative to the owning segment's payload
// (the byte immediately after the 32-byte prologue).
const (
	HeaderSize = 32 // segment prologue: 16-byte tag + allocated size + used size
	TagSize    = 16 // zero-padded ASCII segment tag

	FileHeaderSize = 80 // fixed file header payload after the prologue

	DirectoryEntriesStart   = 128 // payload offset of the first directory entry
	DirectoryEntryFixedSize = 32  // fixed head of a directory entry, before its dimension list
	DimensionEntrySize      = 20  // one per-axis dimension descriptor

	SubBlockFixedSize = 256 // prologue start to the subblock's metadata payload
	MetadataFixedSize = 256 // payload bytes before the embedded XML text

	AttachmentEntriesStart = 256 // payload offset of the first attachment entry
	AttachmentEntrySize    = 128 // fixed size of one attachment directory entry
)

// Schema markers prefixing variable records inside directory segments.
const (
	directoryEntrySchema  = "DV" // subblock directory entry
	attachmentEntrySchema = "A1" // attachment directory entry
)
