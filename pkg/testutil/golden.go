package testutil

// Vectors shared across package tests. They come from the reference wallet
// tooling and consensus encoders, so any change here is a wire break.
const (
	Mnemonic       = "equip will roof matter pink blind book anxiety banner elbow sun young"
	DerivationPath = "m/44'/461'/0/0/0"

	// PrivateKeyBase64 is derived from Mnemonic at DerivationPath with an empty passphrase
	PrivateKeyBase64 = "8VcW07ADswS4BV2cxi5rnIadVsyTDDhY1NfDH19T8Uo="
	PrivateKeyHex    = "f15716d3b003b304b8055d9cc62e6b9c869d56cc930c3858d4d7c31f5f53f14a"
	AddressTestnet   = "t1d2xrzcslx7xlbbylc5c3d5lvandqw4iwl6epxba"
	AddressMainnet   = "f1d2xrzcslx7xlbbylc5c3d5lvandqw4iwl6epxba"

	ToAddress     = "t17uoq6tp427uzv7fztkbsnn64iwotfrristwpryy"
	SignerAddress = "t137sjdbgunloi7couiy4l5nc7pd6k2jmq32vizpy"

	// UnsignedMessageCBOR is to=ToAddress from=AddressTestnet nonce=1 value=100000
	// gas=25000 feecap=1 premium=1 method=0 and no params
	UnsignedMessageCBOR = "8a005501fd1d0f4dfcd7e99afcb99a8326b7dc459d32c62855011eaf1c8a4bbfeeb0870b1745b1f57503470b71160144000186a01961a84200014200010040"

	// SignedMessageCBOR wraps a gas=2500 variant. The signature predates a
	// message format change and only serves structural parsing.
	SignedMessageCBOR         = "828a005501fd1d0f4dfcd7e99afcb99a8326b7dc459d32c62855011eaf1c8a4bbfeeb0870b1745b1f57503470b71160144000186a01909c4420001420001004058420106398485060ca2a4deb97027f518f45569360c3873a4303926fa6909a7299d4c55883463120836358ff3396882ee0dc2cf15961bd495cdfb3de1ee2e8bd3768e01"
	SignedMessageSignatureHex = "06398485060ca2a4deb97027f518f45569360c3873a4303926fa6909a7299d4c55883463120836358ff3396882ee0dc2cf15961bd495cdfb3de1ee2e8bd3768e01"

	// CidMessage* describe the message whose signed form hashes to ExpectedCid
	CidMessageGasLimit = 2500000
	CidSignatureBase64 = "0wRrFJZFIVh8m0JD+f5C55YrxD6YAWtCXWYihrPTKdMfgMhYAy86MVhs43hSLXnV+47UReRIe8qFdHRJqFlreAE="
	ExpectedCid        = "bafy2bzacebaiinljwwctblf7czp4zxwhz4747z6tpricgn5cumd4xhebftcvu"

	BLSPrivateKeyBase64 = "0x7Y0GGX92MeWBF9mcWuR5EYPxe2dy60r8XIQOD31BI="
	BLSPublicKeyHex     = "ade28c91045e89a0dcdb49d5ed0d62a4f02d78a96dbd406a4f9d37a1cd2fb5c29058def79b01b4d1556ade74ffc07904"

	PaychBLSPrivateKeyBase64 = "8niW4fUBoKNo3GMDVfWu0oari11js4t1QpwXVBpEpFA="
	PaychBLSAddress          = "t3smdzzt2fbrzalmfi5rskc3tc6wpwcj2zbgyu5engqtkkzrxteg2oyqpukqzrhqqfvzqadh7mtqye443liejq"
	PaychSecpPrivateKey      = "+UXJi0663hCExYMxZVb9J+wKyFWhhX51jnG7WXkeAw0="
	PaychSecpAddress         = "t1evcupqzya3nuzhuabg4oxwoe2ls7eamcu3uw4cy"
	PaychChannelAddress      = "t2oajfrgjjllncvbxx4shzbxy3nnegsrnnk3tq2tq"
	PaychUpdaterPrivateKey   = "Is8RE05W1aR6Xyk4IbpVA71sU2ibVQQgle80rjs8U8E="
	PaychUpdaterAddress      = "t1gsu6clgzpcrjxclicnsva5bty3r65hnkqpd4jaq"

	// PaychCreateBLSParams is Exec(paymentchannel, [PaychBLSAddress, PaychSecpAddress])
	PaychCreateBLSParams    = "gtgqWBkAAVUAFGZpbC8xL3BheW1lbnRjaGFubmVsWEqCWDEDkwecz0UMcgWwqOxkoW5i9Z9hJ1kJsU6RpoTUrMbzIbTsQfRUMxPCBa5gAZ/snDBOVQElRUfDOAbbTJ6ACbjr2cTS5fIBgg=="
	// PaychCreateSecpParams is Exec(paymentchannel, [PaychSecpAddress, PaychBLSAddress])
	PaychCreateSecpParams   = "gtgqWBkAAVUAFGZpbC8xL3BheW1lbnRjaGFubmVsWEqCVQElRUfDOAbbTJ6ACbjr2cTS5fIBglgxA5MHnM9FDHIFsKjsZKFuYvWfYSdZCbFOkaaE1KzG8yG07EH0VDMTwgWuYAGf7JwwTg=="
	PaychUpdateParams       = "g4tVAnASWJkpWtoqhvfkj5DfG2tIaUWtAABA9gABQgABAIBYQwEBchH8MsS6EHe1a9/gW2lb30YbwD++F+2BRIUTUykZz9U6nt+nGfb41Yf0sy2NfaToz8Il/GmDtnGCepu/ns7nNwFAQA=="
	PaychUpdateSignatureHex = "017211fc32c4ba1077b56bdfe05b695bdf461bc03fbe17ed81448513532919cfd53a9edfa719f6f8d587f4b32d8d7da4e8cfc225fc6983b671827a9bbf9ecee73701"

	VoucherChannelAddress = "t24acjqhdetck7irsvmn2p6jpuwnouzjxuoa22rva"
	// SignedVoucher is a lane 0 nonce 1 voucher for 10000 signed with PrivateKeyBase64
	SignedVoucher         = "i1UC4ASYHGSYlfRGVWN0/yX0s11MpvQAAED2AQFDACcQAIBYQgFRD/3a1fsyc7TLRUgeQ5BAPhB1rDuVt1qvDuwccTODWCJ+OAe4R/+HIGH9pgBYjrghhA4JdgJugTWfzFflbOGSAA=="
	// ForeignSignedVoucher was produced by another implementation and is signed by AddressTestnet
	ForeignSignedVoucher  = "i0MA8gcAAED2AAFEAAGGoACAWEIBayRmYQQCatrELBc2rwfu0jJk0EmVr+eVccDsThtM1ZVzkrC53a6qVgrgFkB8OHoiZSlNmW/nmCU7G2POhEeo2gE="

	MultisigAddress         = "t01004"
	MultisigCreateCBOR      = "8a0042000155011eaf1c8a4bbfeeb0870b1745b1f57503470b711601430003e81a000f4240430009c4430009c402584982d82a53000155000e66696c2f312f6d756c74697369675830838255011eaf1c8a4bbfeeb0870b1745b1f57503470b71165501dfe49184d46adc8f89d44638beb45f78fcad25900100"
	MultisigProposeCBOR     = "8a004300ec0755011eaf1c8a4bbfeeb0870b1745b1f57503470b711601401a000f4240430009c4430009c402581d845501dfe49184d46adc8f89d44638beb45f78fcad2590430003e80040"
	MultisigApproveCBOR     = "8a004300ec0755011eaf1c8a4bbfeeb0870b1745b1f57503470b711601401a000f4240430009c4430009c4035826821904d25820f8acf2652972f009aeaa1d9b61cfcd86702b3093c19c3049604f19db8cb378f3"
	MultisigCancelCBOR      = "8a004300ec0755011eaf1c8a4bbfeeb0870b1745b1f57503470b711601401a000f4240430009c4430009c4045826821904d25820f8acf2652972f009aeaa1d9b61cfcd86702b3093c19c3049604f19db8cb378f3"
	MultisigProposalHashHex = "f8acf2652972f009aeaa1d9b61cfcd86702b3093c19c3049604f19db8cb378f3"
)
