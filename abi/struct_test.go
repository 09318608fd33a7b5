package abi

import "testing"

func TestWriteFDStat(t *testing.T) {
	mem := newTestMemory(t)
	ok := WriteFDStat(mem, 0, FDStat{FileType: FileTypeDirectory, Flags: 0})
	if !ok {
		t.Fatal("WriteFDStat returned false")
	}
	ft, _ := mem.ReadByte(0)
	if FileType(ft) != FileTypeDirectory {
		t.Fatalf("filetype = %d, want %d", ft, FileTypeDirectory)
	}
	rightsBase, _ := mem.ReadUint64Le(8)
	if rightsBase != 0 {
		t.Fatalf("rights_base = %d, want 0 (rights enforcement out of scope)", rightsBase)
	}
}

func TestWriteFileStat(t *testing.T) {
	mem := newTestMemory(t)
	st := FileStat{FileType: FileTypeRegularFile, Size: 42}
	if !WriteFileStat(mem, 0, st) {
		t.Fatal("WriteFileStat returned false")
	}
	ft, _ := mem.ReadByte(16)
	if FileType(ft) != FileTypeRegularFile {
		t.Fatalf("filetype = %d", ft)
	}
	size, _ := mem.ReadUint64Le(32)
	if size != 42 {
		t.Fatalf("size = %d, want 42", size)
	}
}

func TestWritePreStat(t *testing.T) {
	mem := newTestMemory(t)
	if !WritePreStat(mem, 0, PreStat{PathLen: 7}) {
		t.Fatal("WritePreStat returned false")
	}
	tag, _ := mem.ReadByte(0)
	if tag != 0 {
		t.Fatalf("tag = %d, want 0 (PREOPENTYPE_DIR)", tag)
	}
	pathLen, _ := mem.ReadUint32Le(4)
	if pathLen != 7 {
		t.Fatalf("path_len = %d, want 7", pathLen)
	}
}
