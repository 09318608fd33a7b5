package abi

import "github.com/tetratelabs/wazero/api"

// FDStat is the 24 byte fdstat struct:
//
//	filetype:u8 @0, pad u8, flags:u16 @2, pad u32, rights_base:u64 @8,
//	rights_inheriting:u64 @16
//
// Rights are always written as zero: rights enforcement is out of scope for
// this module, so every descriptor is reported as unrestricted.
type FDStat struct {
	FileType FileType
	Flags    FDFlags
}

func WriteFDStat(mem api.Memory, ptr uint32, s FDStat) bool {
	return mem.WriteByte(ptr, byte(s.FileType)) &&
		mem.WriteUint16Le(ptr+2, uint16(s.Flags)) &&
		mem.WriteUint64Le(ptr+8, 0) &&
		mem.WriteUint64Le(ptr+16, 0)
}

// FileStat is the 64 byte filestat struct:
//
//	dev:u64 @0, ino:u64 @8, filetype:u8 @16, pad 7, nlink:u32 @24, pad 4,
//	size:u64 @32, atim:u64 @40, mtim:u64 @48, ctim:u64 @56
type FileStat struct {
	FileType   FileType
	Size       FileSize
	AccessTime Timestamp
	ModifyTime Timestamp
	ChangeTime Timestamp
}

func WriteFileStat(mem api.Memory, ptr uint32, s FileStat) bool {
	return mem.WriteUint64Le(ptr, 0) && // dev
		mem.WriteUint64Le(ptr+8, 0) && // ino
		mem.WriteByte(ptr+16, byte(s.FileType)) &&
		mem.WriteUint32Le(ptr+24, 0) && // nlink
		mem.WriteUint64Le(ptr+32, uint64(s.Size)) &&
		mem.WriteUint64Le(ptr+40, uint64(s.AccessTime)) &&
		mem.WriteUint64Le(ptr+48, uint64(s.ModifyTime)) &&
		mem.WriteUint64Le(ptr+56, uint64(s.ChangeTime))
}

// PreStat is the 8 byte prestat struct: tag:u8=0 @0, pad 3, path_len:u32 @4.
// Tag 0 is PREOPENTYPE_DIR, the only preopen kind this module produces.
type PreStat struct {
	PathLen uint32
}

func WritePreStat(mem api.Memory, ptr uint32, s PreStat) bool {
	return mem.WriteByte(ptr, 0) && mem.WriteUint32Le(ptr+4, s.PathLen)
}
